package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/Faultbox/sunblock/internal/engine/input"
)

// scriptHost replays a fixed list of event batches, one per poll.
type scriptHost struct {
	batches  [][]input.Event
	polls    int
	presents int
	onPoll   func(n int)
	err      error
}

func (h *scriptHost) Poll(dst []input.Event) []input.Event {
	dst = dst[:0]
	if h.onPoll != nil {
		h.onPoll(h.polls)
	}
	if h.polls < len(h.batches) {
		dst = append(dst, h.batches[h.polls]...)
	}
	h.polls++
	return dst
}

func (h *scriptHost) Present() error {
	h.presents++
	return h.err
}

type event struct {
	frame uint64
	e     input.Event
}

type recordingObserver struct {
	events []event
	frames []Snapshot
	err    error
}

func (r *recordingObserver) ObserveEvent(frame uint64, e input.Event) error {
	r.events = append(r.events, event{frame, e})
	return r.err
}

func (r *recordingObserver) ObserveFrame(s Snapshot) error {
	r.frames = append(r.frames, s)
	return r.err
}

func TestRunStopsAtFrameLimit(t *testing.T) {
	c, scene := newTestController(t)
	host := &scriptHost{}
	s := NewScheduler(c, host)
	s.SetMaxFrames(30)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if c.Frame() != 30 || scene.Renders != 30 || host.presents != 30 {
		t.Errorf("frame %d renders %d presents %d, want 30 each", c.Frame(), scene.Renders, host.presents)
	}
}

func TestRunAppliesEventsBeforeStep(t *testing.T) {
	c, _ := newTestController(t)
	host := &scriptHost{batches: [][]input.Event{
		{{Type: input.EventPointerDown, X: 100, Y: 100}},
		{{Type: input.EventPointerMove, X: 150, Y: 130}},
		{{Type: input.EventPointerUp}},
	}}
	obs := &recordingObserver{}
	s := NewScheduler(c, host)
	s.Observe(obs)
	s.SetMaxFrames(3)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Frame 2 already includes the drag delta polled just before it.
	f2 := obs.frames[1]
	if !near(f2.Yaw, 0.02+0.25) || !near(f2.Pitch, 0.02+0.15) {
		t.Errorf("frame 2 orientation = %v/%v, want %v/%v", f2.Yaw, f2.Pitch, 0.27, 0.17)
	}
	if !f2.Dragging {
		t.Error("frame 2 should be mid-drag")
	}
	if obs.frames[2].Dragging {
		t.Error("frame 3 should have released the drag")
	}

	if len(obs.events) != 3 {
		t.Fatalf("observed %d events, want 3", len(obs.events))
	}
	for i, ev := range obs.events {
		if ev.frame != uint64(i) {
			t.Errorf("event %d observed at frame %d, want %d", i, ev.frame, i)
		}
	}
}

func TestRunQuitsOnEscapeAndQuit(t *testing.T) {
	tests := []struct {
		name string
		ev   input.Event
	}{
		{"escape", input.Event{Type: input.EventKeyDown, Key: input.KeyEscape}},
		{"quit", input.Event{Type: input.EventQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t)
			host := &scriptHost{batches: [][]input.Event{nil, nil, {
				tt.ev,
				{Type: input.EventPointerDown, X: 1, Y: 1},
			}}}
			s := NewScheduler(c, host)

			if err := s.Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if c.Frame() != 2 {
				t.Errorf("stopped at frame %d, want 2", c.Frame())
			}
			if c.Drag().Active {
				t.Error("events after the quit request were applied")
			}
		})
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	c, _ := newTestController(t)
	ctx, cancel := context.WithCancel(context.Background())
	host := &scriptHost{onPoll: func(n int) {
		if n == 4 {
			cancel()
		}
	}}
	s := NewScheduler(c, host)

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The poll that cancelled still completes its frame.
	if c.Frame() != 5 {
		t.Errorf("stopped at frame %d, want 5", c.Frame())
	}
}

func TestRunPropagatesFailures(t *testing.T) {
	boom := errors.New("boom")

	t.Run("render", func(t *testing.T) {
		scene := &HeadlessScene{RenderErr: boom}
		c, _ := New(scene, DefaultConfig())
		if err := NewScheduler(c, &scriptHost{}).Run(context.Background()); !errors.Is(err, boom) {
			t.Errorf("Run error = %v, want %v", err, boom)
		}
	})

	t.Run("present", func(t *testing.T) {
		c, _ := newTestController(t)
		if err := NewScheduler(c, &scriptHost{err: boom}).Run(context.Background()); !errors.Is(err, boom) {
			t.Errorf("Run error = %v, want %v", err, boom)
		}
	})

	t.Run("observer", func(t *testing.T) {
		c, _ := newTestController(t)
		s := NewScheduler(c, &scriptHost{})
		s.Observe(&recordingObserver{err: boom})
		if err := s.Run(context.Background()); !errors.Is(err, boom) {
			t.Errorf("Run error = %v, want %v", err, boom)
		}
	})
}

func TestTickerHost(t *testing.T) {
	c, _ := newTestController(t)
	host := NewTickerHost(1000)
	defer host.Stop()

	s := NewScheduler(c, host)
	s.SetMaxFrames(5)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.Frame() != 5 {
		t.Errorf("frame %d, want 5", c.Frame())
	}

	free := NewTickerHost(0)
	if got := free.Poll(make([]input.Event, 3)); len(got) != 0 {
		t.Errorf("Poll returned %d events, want 0", len(got))
	}
	if err := free.Present(); err != nil {
		t.Errorf("Present: %v", err)
	}
	free.Stop()
}
