// Package motion accumulates the orientation of the controlled block.
package motion

import "github.com/go-gl/mathgl/mgl32"

// Default rates of the reference scene.
const (
	DefaultSpinRate        = 0.01  // radians per frame
	DefaultDragSensitivity = 0.005 // radians per pixel
)

// Orientation is the accumulated rotation of the block in radians.
// Neither axis is wrapped or clamped.
type Orientation struct {
	Yaw   float64 // about the vertical axis
	Pitch float64 // about the horizontal axis
}

// Matrix returns the model rotation, pitch applied after yaw (X then Y Euler order).
func (o Orientation) Matrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(float32(o.Pitch)).Mul4(mgl32.HomogRotate3DY(float32(o.Yaw)))
}

// Integrator folds autonomous spin and drag deltas into an Orientation.
type Integrator struct {
	state       Orientation
	spinRate    float64
	sensitivity float64
}

// NewIntegrator creates an integrator at rest. Rates are used as given, so a
// zero spin rate disables the autonomous spin.
func NewIntegrator(spinRate, sensitivity float64) *Integrator {
	return &Integrator{spinRate: spinRate, sensitivity: sensitivity}
}

// Spin applies the autonomous rotation for the given number of frames to
// both axes, regardless of any drag in progress.
func (i *Integrator) Spin(frames float64) {
	d := i.spinRate * frames
	i.state.Yaw += d
	i.state.Pitch += d
}

// ApplyDragDelta turns a pointer displacement into rotation: horizontal
// motion drives yaw, vertical motion drives pitch.
func (i *Integrator) ApplyDragDelta(dx, dy float64) {
	i.state.Yaw += dx * i.sensitivity
	i.state.Pitch += dy * i.sensitivity
}

// Orientation returns the current accumulated rotation.
func (i *Integrator) Orientation() Orientation {
	return i.state
}
