// Package textfile reads and writes the files behind documents.
package textfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

var (
	// ErrBinary is returned when a file does not look like text.
	ErrBinary = errors.New("not a text file")
	// ErrEncoding is returned when a text file is not valid UTF-8.
	ErrEncoding = errors.New("unsupported encoding")
)

// Files is the file-system surface used by the editor.
type Files struct{}

// Load returns the content of the file at path.
func (Files) Load(path string) (string, error) {
	return Load(path)
}

// Save writes content to path.
func (Files) Save(path, content string) error {
	return Save(path, content)
}

// Load reads path and returns its content as a string. Files that are not
// text, or not UTF-8, are rejected.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !isText(data) {
		return "", fmt.Errorf("%s: %w (%s)", path, ErrBinary, mimetype.Detect(data).String())
	}
	if !utf8.Valid(data) {
		charset := "unknown"
		if res, err := chardet.NewTextDetector().DetectBest(data); err == nil && res.Charset != "" {
			charset = res.Charset
		}
		return "", fmt.Errorf("%s: %w (%s)", path, ErrEncoding, charset)
	}
	return string(data), nil
}

// Save replaces the file at path with content. The data is written to a
// temporary file in the same directory and renamed over the target.
func Save(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func isText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
