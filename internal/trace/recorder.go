// Package trace records the frame loop to disk and replays recordings
// through a fresh controller to check they reproduce exactly.
//
// A trace is a directory holding manifest.json, a snappy-framed JSON-lines
// event log and a zstd-compressed JSON-lines frame log.
package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/Faultbox/sunblock/internal/controller"
	"github.com/Faultbox/sunblock/internal/engine/input"
	"github.com/Faultbox/sunblock/internal/logger"
)

// File names inside a trace directory.
const (
	ManifestFile = "manifest.json"
	EventsFile   = "events.jsonl.sz"
	FramesFile   = "frames.jsonl.zst"
)

// FormatVersion is bumped whenever the record layout changes.
const FormatVersion = 1

// Manifest describes a trace and the controller settings it was recorded with.
type Manifest struct {
	Version    int               `json:"version"`
	CreatedAt  string            `json:"created_at"`
	Controller controller.Config `json:"controller"`
	EventsPath string            `json:"events_path"`
	FramesPath string            `json:"frames_path"`
}

// EventRecord is one applied event and the number of frames completed before it.
type EventRecord struct {
	Frame uint64      `json:"frame"`
	Event input.Event `json:"event"`
}

// Recorder streams events and snapshots into a trace directory. It is a
// controller.Observer and must be used from the frame loop goroutine.
type Recorder struct {
	dir         string
	eventFile   *os.File
	eventStream *snappy.Writer
	events      *json.Encoder
	frameFile   *os.File
	frameStream *zstd.Encoder
	frames      *json.Encoder
	frameCount  uint64
	eventCount  uint64
}

// NewRecorder creates dir, writes the manifest and opens the compressed logs.
func NewRecorder(dir string, cfg controller.Config, clock func() time.Time) (*Recorder, error) {
	if dir == "" {
		return nil, fmt.Errorf("trace directory must be provided")
	}
	if clock == nil {
		clock = time.Now
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create trace dir: %w", err)
	}

	manifest := Manifest{
		Version:    FormatVersion,
		CreatedAt:  clock().UTC().Format(time.RFC3339Nano),
		Controller: cfg,
		EventsPath: EventsFile,
		FramesPath: FramesFile,
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	eventFile, err := os.Create(filepath.Join(dir, EventsFile))
	if err != nil {
		return nil, fmt.Errorf("create event log: %w", err)
	}
	frameFile, err := os.Create(filepath.Join(dir, FramesFile))
	if err != nil {
		eventFile.Close()
		return nil, fmt.Errorf("create frame log: %w", err)
	}
	frameStream, err := zstd.NewWriter(frameFile)
	if err != nil {
		eventFile.Close()
		frameFile.Close()
		return nil, fmt.Errorf("open zstd stream: %w", err)
	}

	r := &Recorder{
		dir:         dir,
		eventFile:   eventFile,
		eventStream: snappy.NewBufferedWriter(eventFile),
		frameFile:   frameFile,
		frameStream: frameStream,
	}
	r.events = json.NewEncoder(r.eventStream)
	r.frames = json.NewEncoder(r.frameStream)

	logger.Info("recording trace", zap.String("dir", dir))
	return r, nil
}

// Dir returns the trace directory.
func (r *Recorder) Dir() string {
	return r.dir
}

// ObserveEvent appends an event line.
func (r *Recorder) ObserveEvent(frame uint64, e input.Event) error {
	if err := r.events.Encode(EventRecord{Frame: frame, Event: e}); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	r.eventCount++
	return nil
}

// ObserveFrame appends a snapshot line.
func (r *Recorder) ObserveFrame(s controller.Snapshot) error {
	if err := r.frames.Encode(s); err != nil {
		return fmt.Errorf("write frame %d: %w", s.Frame, err)
	}
	r.frameCount++
	return nil
}

// Close flushes both logs and closes the files.
func (r *Recorder) Close() error {
	err := errors.Join(
		r.eventStream.Close(),
		r.eventFile.Close(),
		r.frameStream.Close(),
		r.frameFile.Close(),
	)
	logger.Info("trace closed",
		zap.String("dir", r.dir),
		zap.Uint64("frames", r.frameCount),
		zap.Uint64("events", r.eventCount),
		zap.Error(err),
	)
	return err
}
