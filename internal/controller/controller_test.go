package controller

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/sunblock/internal/engine/input"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func newTestController(t *testing.T) (*Controller, *HeadlessScene) {
	t.Helper()
	scene := &HeadlessScene{}
	c, err := New(scene, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, scene
}

func TestNewWithoutSceneFails(t *testing.T) {
	c, err := New(nil, DefaultConfig())
	if !errors.Is(err, ErrNoSurface) {
		t.Fatalf("New(nil) error = %v, want ErrNoSurface", err)
	}
	if c != nil {
		t.Error("New(nil) returned a controller")
	}
}

func TestInitialState(t *testing.T) {
	c, scene := newTestController(t)

	snap := c.Snapshot()
	if snap.Frame != 0 || snap.Angle != 0 || snap.Yaw != 0 || snap.Pitch != 0 {
		t.Errorf("initial snapshot = %+v, want zero state", snap)
	}
	if snap.Dragging {
		t.Error("drag active at start")
	}
	if scene.Width != 1280 || scene.Height != 720 {
		t.Errorf("initial surface %dx%d, want 1280x720", scene.Width, scene.Height)
	}
	if math.Abs(float64(scene.Aspect)-1280.0/720.0) > 1e-6 {
		t.Errorf("initial aspect %v, want %v", scene.Aspect, 1280.0/720.0)
	}
	if scene.Renders != 0 {
		t.Errorf("rendered %d frames before the first step", scene.Renders)
	}
}

func TestStepsWithoutDrag(t *testing.T) {
	c, scene := newTestController(t)

	const n = 250
	var snap Snapshot
	for i := 0; i < n; i++ {
		var err error
		if snap, err = c.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	want := n * 0.01
	if !near(snap.Yaw, want) || !near(snap.Pitch, want) {
		t.Errorf("yaw/pitch = %v/%v, want %v", snap.Yaw, snap.Pitch, want)
	}
	if !near(snap.Angle, n*0.001) {
		t.Errorf("angle = %v, want %v", snap.Angle, n*0.001)
	}
	if snap.Frame != n || scene.Renders != n {
		t.Errorf("frame %d, renders %d, want %d", snap.Frame, scene.Renders, n)
	}
}

func TestStepPushesStateIntoScene(t *testing.T) {
	c, scene := newTestController(t)

	snap, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}

	if scene.Orientation.Yaw != snap.Yaw || scene.Orientation.Pitch != snap.Pitch {
		t.Errorf("scene orientation %+v, snapshot %v/%v", scene.Orientation, snap.Yaw, snap.Pitch)
	}
	if [3]float64(scene.Sun.Position) != snap.Sun {
		t.Errorf("scene sun %v, snapshot %v", scene.Sun.Position, snap.Sun)
	}
	if scene.Sun.Intensity != snap.Intensity || scene.Sun.Color.H != snap.Hue {
		t.Errorf("scene light %+v, snapshot %+v", scene.Sun, snap)
	}
	// angle 0.001 → sun barely above the horizon, floored intensity.
	if !near(snap.Sun[0], 50*math.Cos(0.001)) || !near(snap.Sun[1], 20*math.Sin(0.001)) {
		t.Errorf("sun = %v, want the 0.001 rad orbit point", snap.Sun)
	}
	if snap.Intensity != 0.2 {
		t.Errorf("intensity = %v, want 0.2", snap.Intensity)
	}
}

func TestDragScenario(t *testing.T) {
	c, _ := newTestController(t)

	c.HandleEvent(input.Event{Type: input.EventPointerDown, X: 100, Y: 100})
	c.HandleEvent(input.Event{Type: input.EventPointerMove, X: 150, Y: 130})

	o := c.Orientation()
	if !near(o.Yaw, 0.25) || !near(o.Pitch, 0.15) {
		t.Errorf("orientation = %+v, want yaw 0.25 pitch 0.15", o)
	}
	if !c.Drag().Active {
		t.Error("drag should be active between press and release")
	}

	c.HandleEvent(input.Event{Type: input.EventPointerUp})
	if c.Drag().Active {
		t.Error("drag still active after release")
	}
}

func TestMoveWithoutPressLeavesOrientation(t *testing.T) {
	c, _ := newTestController(t)
	c.Step()
	before := c.Orientation()

	c.HandleEvent(input.Event{Type: input.EventPointerMove, X: 400, Y: 10})
	c.HandleEvent(input.Event{Type: input.EventPointerMove, X: 10, Y: 400})

	if c.Orientation() != before {
		t.Errorf("orientation changed from %+v to %+v", before, c.Orientation())
	}
}

func TestDragBatchingDoesNotMatter(t *testing.T) {
	moves := [][2]float64{{12, 40}, {30, 44}, {-5, 60}, {-7, 61}, {90, 10}}

	perTick, _ := newTestController(t)
	perTick.HandleEvent(input.Event{Type: input.EventPointerDown, X: 0, Y: 0})
	for _, m := range moves {
		perTick.HandleEvent(input.Event{Type: input.EventPointerMove, X: m[0], Y: m[1]})
		perTick.Step()
	}

	batched, _ := newTestController(t)
	batched.HandleEvent(input.Event{Type: input.EventPointerDown, X: 0, Y: 0})
	events := make([]input.Event, 0, len(moves))
	for _, m := range moves {
		events = append(events, input.Event{Type: input.EventPointerMove, X: m[0], Y: m[1]})
	}
	for _, e := range input.Coalesce(events) {
		batched.HandleEvent(e)
	}
	for range moves {
		batched.Step()
	}

	a, b := perTick.Orientation(), batched.Orientation()
	if !near(a.Yaw, b.Yaw) || !near(a.Pitch, b.Pitch) {
		t.Errorf("per-tick %+v != batched %+v", a, b)
	}
	wantYaw := 0.05 + 90*0.005
	wantPitch := 0.05 + 10*0.005
	if !near(b.Yaw, wantYaw) || !near(b.Pitch, wantPitch) {
		t.Errorf("orientation = %+v, want yaw %v pitch %v", b, wantYaw, wantPitch)
	}
}

func TestResize(t *testing.T) {
	c, scene := newTestController(t)
	c.Step()
	before := c.Snapshot()

	c.HandleEvent(input.Event{Type: input.EventResize, Width: 800, Height: 400})

	if scene.Width != 800 || scene.Height != 400 {
		t.Errorf("surface %dx%d, want 800x400", scene.Width, scene.Height)
	}
	if scene.Aspect != 2 {
		t.Errorf("aspect %v, want 2", scene.Aspect)
	}
	if v := c.Viewport(); v.Width != 800 || v.Height != 400 {
		t.Errorf("viewport %+v, want 800x400", v)
	}

	after := c.Snapshot()
	if after.Yaw != before.Yaw || after.Angle != before.Angle {
		t.Error("resize changed orientation or light state")
	}
}

func TestResizeIgnoresDegenerateSize(t *testing.T) {
	c, scene := newTestController(t)

	c.Resize(0, 0)
	c.Resize(640, -1)

	if scene.Width != 1280 || scene.Height != 720 {
		t.Errorf("surface %dx%d, want it unchanged at 1280x720", scene.Width, scene.Height)
	}
	if math.IsInf(float64(scene.Aspect), 0) || math.IsNaN(float64(scene.Aspect)) {
		t.Errorf("aspect became %v", scene.Aspect)
	}
}

func TestRenderFailure(t *testing.T) {
	boom := errors.New("context lost")
	scene := &HeadlessScene{RenderErr: boom}
	c, err := New(scene, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Step(); !errors.Is(err, boom) {
		t.Errorf("Step error = %v, want wrapped %v", err, boom)
	}
}

func TestKeysAreIgnored(t *testing.T) {
	c, _ := newTestController(t)
	before := c.Snapshot()
	c.HandleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyScreenshot})
	if c.Snapshot() != before {
		t.Error("key event changed controller state")
	}
}
