package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/Faultbox/sunblock/internal/controller"
)

// ErrVersion is returned for traces written by an incompatible format version.
var ErrVersion = errors.New("unsupported trace version")

// Trace is a fully loaded recording.
type Trace struct {
	Manifest Manifest
	Events   []EventRecord
	Frames   []controller.Snapshot
}

// Open loads the trace in dir.
func Open(dir string) (*Trace, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	t := &Trace{}
	if err := json.Unmarshal(data, &t.Manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if t.Manifest.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, t.Manifest.Version)
	}

	if err := readLines(filepath.Join(dir, t.Manifest.EventsPath), func(r io.Reader) (io.Reader, func(), error) {
		return snappy.NewReader(r), func() {}, nil
	}, func(dec *json.Decoder) error {
		var rec EventRecord
		if err := dec.Decode(&rec); err != nil {
			return err
		}
		t.Events = append(t.Events, rec)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	if err := readLines(filepath.Join(dir, t.Manifest.FramesPath), func(r io.Reader) (io.Reader, func(), error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	}, func(dec *json.Decoder) error {
		var s controller.Snapshot
		if err := dec.Decode(&s); err != nil {
			return err
		}
		t.Frames = append(t.Frames, s)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}

	return t, nil
}

type decompressor func(io.Reader) (io.Reader, func(), error)

// readLines decodes JSON values from a compressed file until EOF.
func readLines(path string, open decompressor, decode func(*json.Decoder) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, closeFn, err := open(bufio.NewReader(f))
	if err != nil {
		return err
	}
	defer closeFn()

	dec := json.NewDecoder(r)
	for {
		err := decode(dec)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
