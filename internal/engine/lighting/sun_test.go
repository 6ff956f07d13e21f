package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestOrbitStartsAtZero(t *testing.T) {
	o := NewOrbit(DefaultOrbitStep)
	if o.Angle() != 0 {
		t.Fatalf("Angle() = %v, want 0", o.Angle())
	}

	pos := o.SunPosition(DefaultRadiusXZ, DefaultRadiusY)
	if !near(pos.X(), 50, eps) || !near(pos.Y(), 0, eps) || !near(pos.Z(), 0, eps) {
		t.Errorf("SunPosition() = %v, want (50, 0, 0)", pos)
	}
	if got := o.Intensity(); got != IntensityFloor {
		t.Errorf("Intensity() = %v, want floor %v", got, IntensityFloor)
	}
	if got := o.Hue(); got != 0 {
		t.Errorf("Hue() = %v, want 0", got)
	}
}

func TestSunAtQuarterTurn(t *testing.T) {
	s := SunAt(math.Pi/2, 50, 20)

	if !near(s.Position.X(), 0, 1e-9) || !near(s.Position.Y(), 20, eps) || !near(s.Position.Z(), 50, eps) {
		t.Errorf("Position = %v, want ~(0, 20, 50)", s.Position)
	}
	if !near(s.Intensity, 1.5, eps) {
		t.Errorf("Intensity = %v, want 1.5", s.Intensity)
	}
	if !near(s.Color.H, 0.25, eps) {
		t.Errorf("Hue = %v, want 0.25", s.Color.H)
	}
	if s.Color.S != 1.0 || s.Color.L != 0.5 {
		t.Errorf("S/L = %v/%v, want 1.0/0.5", s.Color.S, s.Color.L)
	}
}

func TestAdvanceIsMonotonicAndUnwrapped(t *testing.T) {
	o := NewOrbit(0.5)
	prev := o.Angle()
	for i := 0; i < 100; i++ {
		o.Advance()
		if o.Angle() <= prev {
			t.Fatalf("angle did not increase at frame %d: %v -> %v", i, prev, o.Angle())
		}
		prev = o.Angle()
	}
	// 100 * 0.5 = 50 rad, well past 2π: no wrapping.
	if !near(o.Angle(), 50, 1e-9) {
		t.Errorf("Angle() = %v, want 50", o.Angle())
	}
}

func TestNewOrbitRejectsNonPositiveStep(t *testing.T) {
	for _, step := range []float64{0, -0.1} {
		if got := NewOrbit(step).Step(); got != DefaultOrbitStep {
			t.Errorf("NewOrbit(%v).Step() = %v, want %v", step, got, DefaultOrbitStep)
		}
	}
}

func TestIntensityBounds(t *testing.T) {
	for i := -2000; i <= 2000; i++ {
		angle := float64(i) * 0.01
		got := Intensity(angle)
		if got < IntensityFloor || got > IntensityPeak {
			t.Fatalf("Intensity(%v) = %v, outside [%v, %v]", angle, got, IntensityFloor, IntensityPeak)
		}
		if math.Sin(angle) <= 0 && got != IntensityFloor {
			t.Fatalf("Intensity(%v) = %v, want floor when sun is below horizon", angle, got)
		}
	}
}

func TestIntensityTracksSunHeight(t *testing.T) {
	tests := []struct {
		angle float64
		want  float64
	}{
		{0, 0.2},
		{math.Pi / 6, 0.75},
		{math.Pi / 2, 1.5},
		{math.Pi, 0.2},
		{3 * math.Pi / 2, 0.2},
		{0.05, 0.2}, // 1.5*sin(0.05) ≈ 0.075 is floored
	}
	for _, tt := range tests {
		if got := Intensity(tt.angle); !near(got, tt.want, 1e-9) {
			t.Errorf("Intensity(%v) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestHueRangeAndPeriod(t *testing.T) {
	for i := 0; i < 5000; i++ {
		angle := float64(i)*0.0137 + 0.003
		h := Hue(angle)
		if h < 0 || h >= 1 {
			t.Fatalf("Hue(%v) = %v, outside [0, 1)", angle, h)
		}
		if shifted := Hue(angle + 2*math.Pi); !near(h, shifted, 1e-9) {
			t.Fatalf("Hue not periodic at %v: %v vs %v", angle, h, shifted)
		}
	}
}

func TestHueNegativeAngle(t *testing.T) {
	if got := Hue(-math.Pi / 2); !near(got, 0.75, 1e-12) {
		t.Errorf("Hue(-π/2) = %v, want 0.75", got)
	}
}

func TestSunPositionStaysOnEllipse(t *testing.T) {
	o := NewOrbit(0.37)
	for i := 0; i < 50; i++ {
		o.Advance()
		p := o.SunPosition(50, 20)
		if r := math.Hypot(p.X(), p.Z()); !near(r, 50, 1e-9) {
			t.Fatalf("horizontal radius = %v, want 50", r)
		}
		if !near(p.Y()/20, p.Z()/50, 1e-12) {
			t.Fatalf("height %v not in phase with z %v", p.Y(), p.Z())
		}
	}
}

func TestSunIsDeterministic(t *testing.T) {
	a, b := NewOrbit(0.001), NewOrbit(0.001)
	for i := 0; i < 1234; i++ {
		a.Advance()
		b.Advance()
	}
	if a.Sun(50, 20) != b.Sun(50, 20) {
		t.Error("orbits advanced by the same frame count diverged")
	}
}

func TestSunDirection(t *testing.T) {
	sun := SunAt(math.Pi/2, DefaultRadiusXZ, DefaultRadiusY)
	d := sun.Direction(mgl64.Vec3{})

	if !near(float64(d.Len()), 1, 1e-6) {
		t.Errorf("direction length = %v, want 1", d.Len())
	}
	// At a quarter turn the sun sits at (0, 20, 50).
	want := mgl64.Vec3{0, 20, 50}.Normalize()
	for i := range 3 {
		if !near(float64(d[i]), want[i], 1e-6) {
			t.Errorf("direction = %v, want %v", d, want)
			break
		}
	}

	if got := (Sun{}).Direction(mgl64.Vec3{}); got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("degenerate direction = %v, want straight up", got)
	}
}

func TestSunRadiance(t *testing.T) {
	noon := SunAt(math.Pi/2, DefaultRadiusXZ, DefaultRadiusY)
	r := noon.Radiance()
	rgb := noon.Color.RGB()
	for i := range 3 {
		if !near(float64(r[i]), float64(rgb[i])*IntensityPeak, 1e-6) {
			t.Fatalf("radiance = %v, want %v scaled by %v", r, rgb, IntensityPeak)
		}
	}

	night := SunAt(3*math.Pi/2, DefaultRadiusXZ, DefaultRadiusY)
	if night.Radiance().Len() == 0 {
		t.Error("night radiance dropped to zero")
	}
}
