package controller

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sunblock/internal/engine/input"
	"github.com/Faultbox/sunblock/internal/logger"
)

// Host is the environment the frame loop runs in.
type Host interface {
	// Poll returns the events delivered since the previous call, reusing dst.
	Poll(dst []input.Event) []input.Event
	// Present shows the rendered frame and blocks until the next refresh tick.
	Present() error
}

// Observer is notified of every applied event and every completed frame.
// Events carry the number of frames completed before they were applied.
type Observer interface {
	ObserveEvent(frame uint64, e input.Event) error
	ObserveFrame(s Snapshot) error
}

// Scheduler drives the controller once per host refresh.
type Scheduler struct {
	ctrl      *Controller
	host      Host
	observers []Observer
	maxFrames uint64
	events    []input.Event
}

// NewScheduler creates a scheduler for ctrl running inside host.
func NewScheduler(ctrl *Controller, host Host) *Scheduler {
	return &Scheduler{
		ctrl:   ctrl,
		host:   host,
		events: make([]input.Event, 0, 16),
	}
}

// Observe registers an observer. Observers are called in registration order.
func (s *Scheduler) Observe(o Observer) {
	s.observers = append(s.observers, o)
}

// SetMaxFrames stops Run once the controller reaches n frames. Zero means no limit.
func (s *Scheduler) SetMaxFrames(n uint64) {
	s.maxFrames = n
}

// Run loops until the host asks to quit, Escape is pressed, ctx is
// cancelled or the frame limit is reached. Each iteration applies the
// pending events, steps the controller once and presents the frame.
func (s *Scheduler) Run(ctx context.Context) error {
	logger.Info("starting frame loop", zap.Uint64("maxFrames", s.maxFrames))

	frameCount := 0
	fpsTimer := time.Now()

	for {
		if ctx.Err() != nil {
			logger.Info("frame loop cancelled", zap.Uint64("frame", s.ctrl.Frame()))
			return nil
		}
		if s.maxFrames > 0 && s.ctrl.Frame() >= s.maxFrames {
			logger.Info("frame limit reached", zap.Uint64("frame", s.ctrl.Frame()))
			return nil
		}

		quit, err := s.dispatch()
		if err != nil {
			return err
		}
		if quit {
			logger.Info("quit requested", zap.Uint64("frame", s.ctrl.Frame()))
			return nil
		}

		snap, err := s.ctrl.Step()
		if err != nil {
			return err
		}
		for _, o := range s.observers {
			if err := o.ObserveFrame(snap); err != nil {
				return fmt.Errorf("observing frame %d: %w", snap.Frame, err)
			}
		}

		if err := s.host.Present(); err != nil {
			return fmt.Errorf("present frame %d: %w", snap.Frame, err)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Object("state", snap))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// dispatch applies the events polled since the last frame. It stops at the
// first quit request.
func (s *Scheduler) dispatch() (bool, error) {
	s.events = s.host.Poll(s.events)
	for _, e := range s.events {
		if e.Type == input.EventQuit || (e.Type == input.EventKeyDown && e.Key == input.KeyEscape) {
			return true, nil
		}
		for _, o := range s.observers {
			if err := o.ObserveEvent(s.ctrl.Frame(), e); err != nil {
				return false, fmt.Errorf("observing %s event: %w", e.Type, err)
			}
		}
		s.ctrl.HandleEvent(e)
	}
	return false, nil
}

// TickerHost is a Host without a display. Present waits for the next tick of
// a fixed-rate ticker; with a zero rate frames run back to back.
type TickerHost struct {
	ticker *time.Ticker
}

// NewTickerHost creates a host ticking hz times per second.
func NewTickerHost(hz float64) *TickerHost {
	h := &TickerHost{}
	if hz > 0 {
		interval := time.Duration(float64(time.Second) / hz)
		if interval <= 0 {
			interval = time.Nanosecond
		}
		h.ticker = time.NewTicker(interval)
	}
	return h
}

// Poll never has host events.
func (h *TickerHost) Poll(dst []input.Event) []input.Event {
	return dst[:0]
}

// Present waits for the next tick.
func (h *TickerHost) Present() error {
	if h.ticker != nil {
		<-h.ticker.C
	}
	return nil
}

// Stop releases the ticker.
func (h *TickerHost) Stop() {
	if h.ticker != nil {
		h.ticker.Stop()
	}
}
