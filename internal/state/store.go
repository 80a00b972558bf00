package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// Persisted keys, relative to the state scope.
const (
	keyFile          = "file"
	keyActiveFile    = "activeFile"
	keyLastDirectory = "lastDirectory"
	keyPreview       = "previewVisible"
	keyHTMLSource    = "htmlSourceVisible"
	keyMarkdownAST   = "markdownAstVisible"
)

// Scope is the key prefix under which session state is stored.
const Scope = "state"

// KV is the key-value persistence the store reads and writes.
type KV interface {
	GetString(key string) (string, bool)
	PutString(key, value string) error
	GetStringList(key string) []string
	PutStringList(key string, values []string) error
	Remove(key string) error
	Batch(fn func() error) error
}

// PreviewType selects which preview pane is shown next to the editor.
type PreviewType int

const (
	PreviewNone PreviewType = iota
	PreviewWeb
	PreviewSource
	PreviewAST
)

func (p PreviewType) String() string {
	switch p {
	case PreviewWeb:
		return "preview"
	case PreviewSource:
		return "html"
	case PreviewAST:
		return "ast"
	default:
		return "none"
	}
}

// Preferences are the persisted display toggles.
type Preferences struct {
	Preview       bool
	RawOutput     bool
	StructureView bool
}

// DefaultPreferences returns the toggles used when nothing is persisted.
func DefaultPreferences() Preferences {
	return Preferences{Preview: true}
}

// PreviewType resolves the toggles to a single pane. Later toggles win:
// structure view over raw output over preview.
func (p Preferences) PreviewType() PreviewType {
	t := PreviewNone
	if p.Preview {
		t = PreviewWeb
	}
	if p.RawOutput {
		t = PreviewSource
	}
	if p.StructureView {
		t = PreviewAST
	}
	return t
}

// Snapshot is the persisted session as read by Load.
type Snapshot struct {
	Paths         []string
	ActivePath    string
	LastDirectory string
	Preferences   Preferences
}

// ActiveIndex returns the position of ActivePath within paths, or 0.
func (s Snapshot) ActiveIndex(paths []string) int {
	if s.ActivePath == "" {
		return 0
	}
	for i, p := range paths {
		if p == s.ActivePath {
			return i
		}
	}
	return 0
}

// Store reads and writes session state through a KV.
type Store struct {
	kv KV
}

// NewStore returns a store backed by kv. Keys passed to kv are relative to
// the state scope; callers scope the KV themselves.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted session. Missing keys yield defaults.
func (s *Store) Load() Snapshot {
	def := DefaultPreferences()
	snap := Snapshot{
		Paths: s.kv.GetStringList(keyFile),
		Preferences: Preferences{
			Preview:       s.getBool(keyPreview, def.Preview),
			RawOutput:     s.getBool(keyHTMLSource, def.RawOutput),
			StructureView: s.getBool(keyMarkdownAST, def.StructureView),
		},
	}
	if active, ok := s.kv.GetString(keyActiveFile); ok {
		snap.ActivePath = active
	}
	snap.LastDirectory = s.LastDirectory()
	return snap
}

// LastDirectory returns the directory last used by a file dialog, or the
// working directory when none is stored or it no longer exists.
func (s *Store) LastDirectory() string {
	if dir, ok := s.kv.GetString(keyLastDirectory); ok && isDir(dir) {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Save persists the open paths and the active path. Empty paths (untitled
// documents) are skipped; an empty activePath clears the stored entry.
func (s *Store) Save(openPaths []string, activePath string) error {
	paths := make([]string, 0, len(openPaths))
	for _, p := range openPaths {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return s.kv.Batch(func() error {
		if err := s.kv.PutStringList(keyFile, paths); err != nil {
			return fmt.Errorf("save open files: %w", err)
		}
		if activePath == "" {
			if err := s.kv.Remove(keyActiveFile); err != nil {
				return fmt.Errorf("clear active file: %w", err)
			}
			return nil
		}
		if err := s.kv.PutString(keyActiveFile, activePath); err != nil {
			return fmt.Errorf("save active file: %w", err)
		}
		return nil
	})
}

// SetLastDirectory records dir for the next file dialog.
func (s *Store) SetLastDirectory(dir string) error {
	if dir == "" {
		return nil
	}
	if err := s.kv.PutString(keyLastDirectory, filepath.Clean(dir)); err != nil {
		return fmt.Errorf("save last directory: %w", err)
	}
	return nil
}

// SavePreferences persists the display toggles.
func (s *Store) SavePreferences(p Preferences) error {
	return s.kv.Batch(func() error {
		for key, v := range map[string]bool{
			keyPreview:     p.Preview,
			keyHTMLSource:  p.RawOutput,
			keyMarkdownAST: p.StructureView,
		} {
			if err := s.kv.PutString(key, formatBool(v)); err != nil {
				return fmt.Errorf("save %s: %w", key, err)
			}
		}
		return nil
	})
}

func (s *Store) getBool(key string, def bool) bool {
	raw, ok := s.kv.GetString(key)
	if !ok {
		return def
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
