package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestCamera() *PerspectiveCamera {
	return NewPerspectiveCamera(mgl32.Vec3{5, 5, 10}, mgl32.Vec3{}, 75, 16.0/9.0, 0.1, 1000)
}

func TestProjectionTracksAspect(t *testing.T) {
	c := newTestCamera()

	c.SetAspect(2)
	p := c.Projection()

	f := float32(1 / math.Tan(float64(mgl32.DegToRad(75))/2))
	if !mgl32.FloatEqualThreshold(p.At(1, 1), f, 1e-5) {
		t.Errorf("y scale = %v, want %v", p.At(1, 1), f)
	}
	if !mgl32.FloatEqualThreshold(p.At(0, 0), f/2, 1e-5) {
		t.Errorf("x scale = %v, want %v", p.At(0, 0), f/2)
	}
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	c := newTestCamera()
	before := c.Projection()

	c.SetAspect(0)
	c.SetAspect(-1)

	if c.Aspect != 16.0/9.0 || c.Projection() != before {
		t.Errorf("aspect changed to %v", c.Aspect)
	}
}

func TestViewLooksAtTarget(t *testing.T) {
	c := newTestCamera()

	// The target lands on the camera's -Z axis.
	p := c.View().Mul4x1(c.Target.Vec4(1))
	if mgl32.Abs(p.X()) > 1e-5 || mgl32.Abs(p.Y()) > 1e-5 {
		t.Errorf("target in view space = %v, want on the view axis", p)
	}
	want := -c.Position.Len()
	if !mgl32.FloatEqualThreshold(p.Z(), want, 1e-4) {
		t.Errorf("target depth = %v, want %v", p.Z(), want)
	}
}

func TestViewProjectionKeepsTargetCentred(t *testing.T) {
	c := newTestCamera()
	clip := c.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())

	if mgl32.Abs(ndc.X()) > 1e-5 || mgl32.Abs(ndc.Y()) > 1e-5 {
		t.Errorf("target ndc = %v, want centred", ndc)
	}
	if ndc.Z() <= -1 || ndc.Z() >= 1 {
		t.Errorf("target depth %v outside the clip range", ndc.Z())
	}
}
