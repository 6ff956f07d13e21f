// Package camera provides the perspective camera used to view the scene.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera looks from a fixed position at a target point.
type PerspectiveCamera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FOV    float32 // vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32

	projection mgl32.Mat4
}

// NewPerspectiveCamera creates a camera at position looking at target with
// the given vertical field of view (degrees) and clip planes.
func NewPerspectiveCamera(position, target mgl32.Vec3, fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Position: position,
		Target:   target,
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
	c.UpdateProjection()
	return c
}

// SetAspect changes the aspect ratio and recomputes the projection.
// Non-positive ratios are ignored.
func (c *PerspectiveCamera) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
	c.UpdateProjection()
}

// UpdateProjection recomputes the projection matrix from FOV, Aspect and the clip planes.
func (c *PerspectiveCamera) UpdateProjection() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Projection returns the cached projection matrix.
func (c *PerspectiveCamera) Projection() mgl32.Mat4 {
	return c.projection
}

// View returns the world-to-camera matrix.
func (c *PerspectiveCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ViewProjection returns Projection * View.
func (c *PerspectiveCamera) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.View())
}
