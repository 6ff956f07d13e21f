package motion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestSpinWithoutDrag(t *testing.T) {
	for _, n := range []int{0, 1, 10, 157, 1000} {
		i := NewIntegrator(DefaultSpinRate, DefaultDragSensitivity)
		for f := 0; f < n; f++ {
			i.Spin(1)
		}
		got := i.Orientation()
		want := float64(n) * 0.01
		if !near(got.Yaw, want) || !near(got.Pitch, want) {
			t.Errorf("after %d frames: %+v, want yaw=pitch=%v", n, got, want)
		}
	}
}

func TestSpinScalesWithFrames(t *testing.T) {
	a := NewIntegrator(DefaultSpinRate, DefaultDragSensitivity)
	a.Spin(3)

	b := NewIntegrator(DefaultSpinRate, DefaultDragSensitivity)
	b.Spin(1)
	b.Spin(1)
	b.Spin(1)

	if !near(a.Orientation().Yaw, b.Orientation().Yaw) {
		t.Errorf("Spin(3) = %v, three Spin(1) = %v", a.Orientation().Yaw, b.Orientation().Yaw)
	}
}

func TestDragDelta(t *testing.T) {
	i := NewIntegrator(DefaultSpinRate, DefaultDragSensitivity)
	i.ApplyDragDelta(50, 30)

	got := i.Orientation()
	if !near(got.Yaw, 0.25) {
		t.Errorf("Yaw = %v, want 0.25", got.Yaw)
	}
	if !near(got.Pitch, 0.15) {
		t.Errorf("Pitch = %v, want 0.15", got.Pitch)
	}
}

func TestDragAndSpinCommute(t *testing.T) {
	a := NewIntegrator(DefaultSpinRate, DefaultDragSensitivity)
	a.Spin(1)
	a.ApplyDragDelta(-12, 40)

	b := NewIntegrator(DefaultSpinRate, DefaultDragSensitivity)
	b.ApplyDragDelta(-12, 40)
	b.Spin(1)

	if !near(a.Orientation().Yaw, b.Orientation().Yaw) || !near(a.Orientation().Pitch, b.Orientation().Pitch) {
		t.Errorf("order matters: %+v vs %+v", a.Orientation(), b.Orientation())
	}
}

func TestNoWrapAround(t *testing.T) {
	i := NewIntegrator(1, DefaultDragSensitivity)
	i.Spin(10)
	if got := i.Orientation().Yaw; !near(got, 10) {
		t.Errorf("Yaw = %v, want 10 (unwrapped)", got)
	}

	i.ApplyDragDelta(-10000, -10000)
	if got := i.Orientation().Pitch; !near(got, -40) {
		t.Errorf("Pitch = %v, want -40 (unclamped)", got)
	}
}

func TestZeroSpinRate(t *testing.T) {
	i := NewIntegrator(0, DefaultDragSensitivity)
	i.Spin(100)
	if got := i.Orientation(); got != (Orientation{}) {
		t.Errorf("Orientation = %+v, want zero", got)
	}
}

// nearVec compares with an absolute tolerance; float32 cos(π/2) is not zero.
func nearVec(got, want mgl32.Vec3) bool {
	return got.Sub(want).Len() <= 1e-5
}

func TestMatrix(t *testing.T) {
	if !(Orientation{}).Matrix().ApproxEqual(mgl32.Ident4()) {
		t.Error("zero orientation should be identity")
	}

	// A quarter yaw turns +X into -Z.
	m := Orientation{Yaw: math.Pi / 2}.Matrix()
	got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !nearVec(got, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("yaw π/2 maps +X to %v, want (0, 0, -1)", got)
	}

	// A quarter pitch turns +Y into +Z.
	m = Orientation{Pitch: math.Pi / 2}.Matrix()
	got = m.Mul4x1(mgl32.Vec4{0, 1, 0, 1}).Vec3()
	if !nearVec(got, mgl32.Vec3{0, 0, 1}) {
		t.Errorf("pitch π/2 maps +Y to %v, want (0, 0, 1)", got)
	}

	// Both turns at once: pitch applies after yaw.
	m = Orientation{Yaw: math.Pi / 2, Pitch: math.Pi / 2}.Matrix()
	got = m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !nearVec(got, mgl32.Vec3{0, 1, 0}) {
		t.Errorf("yaw+pitch π/2 maps +X to %v, want (0, 1, 0)", got)
	}
}
