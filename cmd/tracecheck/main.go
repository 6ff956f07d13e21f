// Package main replays a recorded frame trace and reports whether it reproduces.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/sunblock/internal/logger"
	"github.com/Faultbox/sunblock/internal/trace"
)

func main() {
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-v] <trace-dir>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dir := flag.Arg(0)
	t, err := trace.Open(dir)
	if err != nil {
		logger.Error("open trace", zap.String("dir", dir), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	res, err := trace.Replay(context.Background(), t)
	var div *trace.Divergence
	switch {
	case errors.As(err, &div):
		fmt.Printf("DIVERGED at frame %d\n  want: %+v\n  got:  %+v\n", div.Want.Frame, div.Want, div.Got)
		logger.Sync()
		os.Exit(1)
	case err != nil:
		fmt.Printf("FAILED: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}

	fmt.Printf("OK: %d frames, %d events reproduced (recorded %s)\n", res.Frames, res.Events, t.Manifest.CreatedAt)
}
