package state

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/five82/quill/internal/prefs"
)

func newTestStore(t *testing.T) (*Store, *prefs.Node) {
	t.Helper()
	f, err := prefs.OpenFile(filepath.Join(t.TempDir(), "session.toml"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	node := prefs.NewNode(f, Scope)
	return NewStore(node), node
}

func TestLoad_EmptyUsesDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	snap := s.Load()
	if len(snap.Paths) != 0 {
		t.Fatalf("Paths = %v, want empty", snap.Paths)
	}
	if snap.ActivePath != "" {
		t.Fatalf("ActivePath = %q, want empty", snap.ActivePath)
	}
	if snap.Preferences != DefaultPreferences() {
		t.Fatalf("Preferences = %+v, want %+v", snap.Preferences, DefaultPreferences())
	}
	wd, _ := os.Getwd()
	if snap.LastDirectory != wd {
		t.Fatalf("LastDirectory = %q, want working dir %q", snap.LastDirectory, wd)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save([]string{"/p1.md", "/p2.md"}, "/p2.md"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	snap := s.Load()
	if !reflect.DeepEqual(snap.Paths, []string{"/p1.md", "/p2.md"}) {
		t.Fatalf("Paths = %v, want [/p1.md /p2.md]", snap.Paths)
	}
	if snap.ActivePath != "/p2.md" {
		t.Fatalf("ActivePath = %q, want /p2.md", snap.ActivePath)
	}
}

func TestSave_SkipsUntitledAndClearsActive(t *testing.T) {
	s, node := newTestStore(t)

	if err := s.Save([]string{"/a.md", "/b.md", "/c.md"}, "/c.md"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := s.Save([]string{"", "/a.md"}, ""); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	snap := s.Load()
	if !reflect.DeepEqual(snap.Paths, []string{"/a.md"}) {
		t.Fatalf("Paths = %v, want [/a.md]", snap.Paths)
	}
	if snap.ActivePath != "" {
		t.Fatalf("ActivePath = %q, want cleared", snap.ActivePath)
	}
	if _, ok := node.GetString("file.1"); ok {
		t.Fatalf("stale file.1 left behind")
	}
}

func TestLastDirectory_FallsBackWhenMissing(t *testing.T) {
	s, _ := newTestStore(t)
	wd, _ := os.Getwd()

	dir := t.TempDir()
	if err := s.SetLastDirectory(dir); err != nil {
		t.Fatalf("SetLastDirectory returned error: %v", err)
	}
	if got := s.LastDirectory(); got != dir {
		t.Fatalf("LastDirectory = %q, want %q", got, dir)
	}

	if err := s.SetLastDirectory(filepath.Join(dir, "gone")); err != nil {
		t.Fatalf("SetLastDirectory returned error: %v", err)
	}
	if got := s.LastDirectory(); got != wd {
		t.Fatalf("LastDirectory = %q, want working dir %q", got, wd)
	}
}

func TestSavePreferences_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	want := Preferences{Preview: false, RawOutput: true, StructureView: false}
	if err := s.SavePreferences(want); err != nil {
		t.Fatalf("SavePreferences returned error: %v", err)
	}
	if got := s.Load().Preferences; got != want {
		t.Fatalf("Preferences = %+v, want %+v", got, want)
	}
}

func TestPreviewType(t *testing.T) {
	tests := []struct {
		name  string
		prefs Preferences
		want  PreviewType
	}{
		{"nothing visible", Preferences{}, PreviewNone},
		{"preview", Preferences{Preview: true}, PreviewWeb},
		{"raw output wins over preview", Preferences{Preview: true, RawOutput: true}, PreviewSource},
		{"structure wins over all", Preferences{Preview: true, RawOutput: true, StructureView: true}, PreviewAST},
		{"structure alone", Preferences{StructureView: true}, PreviewAST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prefs.PreviewType(); got != tt.want {
				t.Errorf("PreviewType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshot_ActiveIndex(t *testing.T) {
	snap := Snapshot{ActivePath: "/b.md"}
	if got := snap.ActiveIndex([]string{"/a.md", "/b.md"}); got != 1 {
		t.Fatalf("ActiveIndex = %d, want 1", got)
	}
	if got := snap.ActiveIndex([]string{"/a.md"}); got != 0 {
		t.Fatalf("ActiveIndex (missing) = %d, want 0", got)
	}
}

type countingKV struct {
	*prefs.Node
	batches int
}

func (c *countingKV) Batch(fn func() error) error {
	c.batches++
	return c.Node.Batch(fn)
}

func TestStoreWritesAreBatched(t *testing.T) {
	f, err := prefs.OpenFile(filepath.Join(t.TempDir(), "session.toml"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	kv := &countingKV{Node: prefs.NewNode(f, Scope)}
	s := NewStore(kv)

	if err := s.Save([]string{"/a.md", "/b.md"}, "/b.md"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := s.SavePreferences(Preferences{RawOutput: true}); err != nil {
		t.Fatalf("SavePreferences returned error: %v", err)
	}
	if kv.batches != 2 {
		t.Fatalf("batches = %d, want 2", kv.batches)
	}

	snap := s.Load()
	if !reflect.DeepEqual(snap.Paths, []string{"/a.md", "/b.md"}) || snap.ActivePath != "/b.md" {
		t.Fatalf("Load = %+v", snap)
	}
	if !snap.Preferences.RawOutput {
		t.Fatalf("RawOutput not persisted")
	}
}
