package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultFilePath = "~/.local/state/quill/session.toml"

// DefaultFilePath returns the default location of the TOML state file.
func DefaultFilePath() string {
	return defaultFilePath
}

// File is a Backend kept in a TOML file. Every mutation rewrites the file,
// except inside Batch, which writes once at the end.
type File struct {
	path   string
	values map[string]string

	batching bool
	dirty    bool
	flushes  int
}

// OpenFile loads the TOML file at path, or the default path when empty.
// A missing, unreadable or malformed file yields an empty store; only path
// resolution errors are returned.
func OpenFile(path string) (*File, error) {
	resolved, err := resolvePath(path, defaultFilePath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	f := &File{path: resolved, values: make(map[string]string)}

	file, err := os.Open(resolved)
	if err != nil {
		return f, nil // Missing or unreadable: start empty
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return f, nil // Graceful degradation
	}

	var loaded map[string]string
	if err := toml.Unmarshal(bytes, &loaded); err != nil {
		return f, nil // Graceful degradation
	}
	for k, v := range loaded {
		f.values[k] = v
	}
	return f, nil
}

// Path returns the resolved file location.
func (f *File) Path() string { return f.path }

// Get implements Backend.
func (f *File) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Put implements Backend.
func (f *File) Put(key, value string) error {
	if old, ok := f.values[key]; ok && old == value {
		return nil
	}
	f.values[key] = value
	return f.flush()
}

// Delete implements Backend.
func (f *File) Delete(key string) error {
	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.flush()
}

// Close implements Backend.
func (f *File) Close() error { return nil }

// Batch runs fn with writes deferred, then rewrites the file once if
// anything changed. Nested calls join the outer batch.
func (f *File) Batch(fn func() error) error {
	if f.batching {
		return fn()
	}
	f.batching = true
	err := fn()
	f.batching = false

	if !f.dirty {
		return err
	}
	return errors.Join(err, f.flush())
}

func (f *File) flush() error {
	if f.batching {
		f.dirty = true
		return nil
	}
	f.dirty = false
	f.flushes++

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	bytes, err := toml.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(f.path, bytes, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
