// Package session wires a controller, its frame loop and the optional trace
// recorder and inspector together from the loaded configuration.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sunblock/internal/config"
	"github.com/Faultbox/sunblock/internal/controller"
	"github.com/Faultbox/sunblock/internal/inspect"
	"github.com/Faultbox/sunblock/internal/logger"
	"github.com/Faultbox/sunblock/internal/trace"
)

// ControllerConfig derives the controller settings for a surface of the given size.
func ControllerConfig(cfg *config.Config, width, height int) controller.Config {
	return controller.Config{
		OrbitStep:       cfg.Animation.OrbitStep,
		SpinRate:        cfg.Animation.SpinRate,
		DragSensitivity: cfg.Animation.DragSensitivity,
		SunRadiusXZ:     cfg.Scene.SunRadiusXZ,
		SunRadiusY:      cfg.Scene.SunRadiusY,
		Width:           width,
		Height:          height,
	}
}

// Session is one run of the frame loop.
type Session struct {
	ctrl     *controller.Controller
	sched    *controller.Scheduler
	recorder *trace.Recorder
	hub      *inspect.Hub

	stopInspect context.CancelFunc
	inspectDone chan error
}

// Start creates the controller for scene and prepares the loop in host.
// A nil scene fails with controller.ErrNoSurface.
func Start(cfg *config.Config, scene controller.Scene, host controller.Host, width, height int) (*Session, error) {
	ccfg := ControllerConfig(cfg, width, height)
	ctrl, err := controller.New(scene, ccfg)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ctrl:  ctrl,
		sched: controller.NewScheduler(ctrl, host),
	}
	s.sched.SetMaxFrames(cfg.Headless.Frames)

	if cfg.Trace.Dir != "" {
		s.recorder, err = trace.NewRecorder(cfg.Trace.Dir, ccfg, time.Now)
		if err != nil {
			return nil, fmt.Errorf("start trace: %w", err)
		}
		s.sched.Observe(s.recorder)
	}

	if cfg.Inspect.Addr != "" {
		s.hub = inspect.NewHub()
		s.sched.Observe(s.hub)

		ctx, cancel := context.WithCancel(context.Background())
		s.stopInspect = cancel
		s.inspectDone = make(chan error, 1)
		go func() {
			err := s.hub.Serve(ctx, cfg.Inspect.Addr)
			if err != nil {
				logger.Error("inspector stopped", zap.Error(err))
			}
			s.inspectDone <- err
		}()
	}

	return s, nil
}

// Controller returns the session controller.
func (s *Session) Controller() *controller.Controller {
	return s.ctrl
}

// Run drives the loop until the host quits, ctx is cancelled or the frame
// limit is reached.
func (s *Session) Run(ctx context.Context) error {
	err := s.sched.Run(ctx)
	logger.Info("session finished", zap.Object("state", s.ctrl.Snapshot()))
	return err
}

// Close flushes the trace and stops the inspector.
func (s *Session) Close() error {
	var errs []error
	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			errs = append(errs, err)
		} else {
			logger.Info("trace written", zap.String("dir", s.recorder.Dir()),
				zap.String("verify", "tracecheck "+s.recorder.Dir()))
		}
	}
	if s.stopInspect != nil {
		s.stopInspect()
		errs = append(errs, <-s.inspectDone)
	}
	return errors.Join(errs...)
}
