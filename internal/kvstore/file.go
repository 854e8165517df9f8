package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// File persists the whole keyspace as one JSON object, rewritten through a
// temp file and rename on every mutation so a crash mid-write leaves the
// previous state intact. It is the daemon's default backend: state
// survives restarts the way browser storage survives reloads.
type File struct {
	mu     sync.Mutex
	path   string
	data   map[string]string
	logger *slog.Logger
}

type FileOption func(*File)

func WithFileLogger(logger *slog.Logger) FileOption {
	return func(f *File) {
		f.logger = logger
	}
}

// NewFile opens or creates the store at path. A missing or unparseable
// file starts the store empty; corruption is logged, never fatal.
func NewFile(path string, opts ...FileOption) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	f := &File{
		path:   path,
		data:   make(map[string]string),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &f.data); err != nil {
		f.logger.Warn("discarding corrupt kv file", "path", path, "error", err)
		f.data = make(map[string]string)
	}
	return f, nil
}

func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", ErrNotFound
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, existed := f.data[key]
	f.data[key] = value
	if err := f.persist(); err != nil {
		// Keep memory and disk consistent: a failed write must not
		// leave the map claiming state the file never got.
		if existed {
			f.data[key] = old
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, existed := f.data[key]
	if !existed {
		return nil
	}
	delete(f.data, key)
	if err := f.persist(); err != nil {
		f.data[key] = old
		return err
	}
	return nil
}

func (f *File) persist() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("encode kv file: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".wizard-kv-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", ErrUnavailable, tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename to %s: %v", ErrUnavailable, f.path, err)
	}
	return nil
}
