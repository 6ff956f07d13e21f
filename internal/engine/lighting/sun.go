// Package lighting animates the sun that drives the day-night cycle.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Default orbit parameters of the reference scene.
const (
	DefaultOrbitStep = 0.001 // radians per frame
	DefaultRadiusXZ  = 50.0
	DefaultRadiusY   = 20.0
	IntensityFloor   = 0.2
	IntensityPeak    = 1.5
	SunSaturation    = 1.0
	SunLightness     = 0.5
	fullTurn         = 2 * math.Pi
)

// Sun is the light state derived from one orbit angle.
type Sun struct {
	Position  mgl64.Vec3
	Intensity float64
	Color     HSL
}

// Orbit owns the monotonically increasing sun angle.
type Orbit struct {
	angle float64
	step  float64
}

// NewOrbit creates an orbit at angle 0 advancing by step radians per frame.
// A non-positive step falls back to DefaultOrbitStep.
func NewOrbit(step float64) *Orbit {
	if step <= 0 {
		step = DefaultOrbitStep
	}
	return &Orbit{step: step}
}

// Advance moves the sun one frame along its orbit. The angle is never wrapped.
func (o *Orbit) Advance() {
	o.angle += o.step
}

// Angle returns the current orbit angle in radians.
func (o *Orbit) Angle() float64 {
	return o.angle
}

// Step returns the per-frame angle increment.
func (o *Orbit) Step() float64 {
	return o.step
}

// SunPosition returns the sun position for the current angle.
func (o *Orbit) SunPosition(radiusXZ, radiusY float64) mgl64.Vec3 {
	return SunPosition(o.angle, radiusXZ, radiusY)
}

// Intensity returns the light intensity for the current angle.
func (o *Orbit) Intensity() float64 {
	return Intensity(o.angle)
}

// Hue returns the light hue for the current angle.
func (o *Orbit) Hue() float64 {
	return Hue(o.angle)
}

// Sun returns the full light state for the current angle.
func (o *Orbit) Sun(radiusXZ, radiusY float64) Sun {
	return SunAt(o.angle, radiusXZ, radiusY)
}

// SunAt derives the light state for an arbitrary angle.
func SunAt(angle, radiusXZ, radiusY float64) Sun {
	return Sun{
		Position:  SunPosition(angle, radiusXZ, radiusY),
		Intensity: Intensity(angle),
		Color:     HSL{H: Hue(angle), S: SunSaturation, L: SunLightness},
	}
}

// SunPosition traces an ellipse: the X/Z terms circle the horizon while the
// Y term raises and sets the sun.
func SunPosition(angle, radiusXZ, radiusY float64) mgl64.Vec3 {
	sin, cos := math.Sincos(angle)
	return mgl64.Vec3{radiusXZ * cos, radiusY * sin, radiusXZ * sin}
}

// Intensity follows the sun's height but never drops below IntensityFloor,
// so the scene stays visible at night.
func Intensity(angle float64) float64 {
	return math.Max(IntensityFloor, IntensityPeak*math.Sin(angle))
}

// Hue maps the angle onto the color wheel, one full turn per orbit.
// The result is always in [0, 1).
func Hue(angle float64) float64 {
	h := math.Mod(angle/fullTurn, 1)
	if h < 0 {
		h++
	}
	if h >= 1 {
		h = 0
	}
	return h
}

// Direction returns the unit vector from target towards the sun, the
// direction light arrives from for a directional light aimed at target.
func (s Sun) Direction(target mgl64.Vec3) mgl32.Vec3 {
	d := s.Position.Sub(target)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	d = d.Normalize()
	return mgl32.Vec3{float32(d[0]), float32(d[1]), float32(d[2])}
}

// Radiance returns the light color scaled by its intensity.
func (s Sun) Radiance() mgl32.Vec3 {
	return s.Color.RGB().Mul(float32(s.Intensity))
}
