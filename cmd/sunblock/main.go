// Package main is the entry point for the sunblock viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/sunblock/internal/config"
	"github.com/Faultbox/sunblock/internal/controller"
	"github.com/Faultbox/sunblock/internal/logger"
	"github.com/Faultbox/sunblock/internal/session"
	"github.com/Faultbox/sunblock/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Sunblock ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Warn("failed to save config", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("path", config.UserConfigPath()))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("sunblock stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("sunblock closed normally")
}

func run(ctx context.Context, cfg *config.Config) error {
	var (
		scene         controller.Scene
		host          controller.Host
		width, height int
	)

	if cfg.Headless.Enabled {
		ticker := controller.NewTickerHost(cfg.Headless.TickHz)
		defer ticker.Stop()
		scene, host = &controller.HeadlessScene{}, ticker
		width, height = cfg.Window.Width, cfg.Window.Height
		logger.Info("running headless", zap.Uint64("frames", cfg.Headless.Frames), zap.Float64("tickHz", cfg.Headless.TickHz))
	} else {
		v, err := viewer.New(cfg)
		if err != nil {
			return fmt.Errorf("create viewer: %w", err)
		}
		defer v.Close()
		scene, host = v.Scene(), v
		width, height = v.Size()
	}

	s, err := session.Start(cfg, scene, host, width, height)
	if err != nil {
		return err
	}
	runErr := s.Run(ctx)
	if err := s.Close(); err != nil {
		logger.Warn("session close", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}
