package trace

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/sunblock/internal/controller"
	"github.com/Faultbox/sunblock/internal/engine/input"
	"github.com/Faultbox/sunblock/internal/logger"
)

// ErrDiverged is returned when a replayed frame differs from the recording.
var ErrDiverged = errors.New("replay diverged")

// Divergence describes the first frame that did not reproduce.
type Divergence struct {
	Index int
	Want  controller.Snapshot
	Got   controller.Snapshot
}

func (d *Divergence) Error() string {
	return fmt.Sprintf("frame %d: want %+v, got %+v", d.Want.Frame, d.Want, d.Got)
}

func (d *Divergence) Unwrap() error {
	return ErrDiverged
}

// Result summarises a successful replay.
type Result struct {
	Frames uint64
	Events int
}

// ScriptedHost replays recorded events at the frame they were first applied.
type ScriptedHost struct {
	events []EventRecord
	next   int
	frame  uint64
}

// NewScriptedHost creates a host delivering events in order.
func NewScriptedHost(events []EventRecord) *ScriptedHost {
	return &ScriptedHost{events: events}
}

// Poll returns the events recorded before the current frame.
func (h *ScriptedHost) Poll(dst []input.Event) []input.Event {
	dst = dst[:0]
	for h.next < len(h.events) && h.events[h.next].Frame <= h.frame {
		dst = append(dst, h.events[h.next].Event)
		h.next++
	}
	return dst
}

// Present counts frames.
func (h *ScriptedHost) Present() error {
	h.frame++
	return nil
}

// verifier compares every produced snapshot with the recording.
type verifier struct {
	want []controller.Snapshot
	idx  int
}

func (v *verifier) ObserveEvent(uint64, input.Event) error { return nil }

func (v *verifier) ObserveFrame(s controller.Snapshot) error {
	if v.idx >= len(v.want) {
		return fmt.Errorf("%w: frame %d beyond the recording", ErrDiverged, s.Frame)
	}
	if want := v.want[v.idx]; s != want {
		return &Divergence{Index: v.idx, Want: want, Got: s}
	}
	v.idx++
	return nil
}

// Replay runs t through a fresh headless controller and checks that every
// recorded snapshot is reproduced exactly. A mismatch returns a *Divergence.
func Replay(ctx context.Context, t *Trace) (Result, error) {
	ctrl, err := controller.New(&controller.HeadlessScene{}, t.Manifest.Controller)
	if err != nil {
		return Result{}, err
	}

	v := &verifier{want: t.Frames}
	sched := controller.NewScheduler(ctrl, NewScriptedHost(t.Events))
	sched.Observe(v)
	sched.SetMaxFrames(uint64(len(t.Frames)))

	if len(t.Frames) > 0 {
		if err := sched.Run(ctx); err != nil {
			return Result{}, err
		}
	}
	if v.idx != len(t.Frames) {
		return Result{}, fmt.Errorf("%w: replay stopped after %d of %d frames", ErrDiverged, v.idx, len(t.Frames))
	}

	logger.Info("replay matched", zap.Int("frames", v.idx), zap.Int("events", len(t.Events)))
	return Result{Frames: uint64(v.idx), Events: len(t.Events)}, nil
}
