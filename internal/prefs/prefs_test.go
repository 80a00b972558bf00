package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOpenFile_MissingFileIsEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	f, err := OpenFile("")
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	want := filepath.Join(home, ".local", "state", "quill", "session.toml")
	if f.Path() != want {
		t.Fatalf("Path = %q, want %q", f.Path(), want)
	}
	if _, ok := f.Get("state.activeFile"); ok {
		t.Fatalf("Get on empty store reported a value")
	}
}

func TestOpenFile_InvalidTOMLDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if _, ok := f.Get("anything"); ok {
		t.Fatalf("Get reported a value from a corrupt file")
	}
}

func TestFile_PutPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "session.toml")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if err := f.Put("state.lastDirectory", "/tmp/docs"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := f.Put("state.file.0", "/tmp/docs/a.md"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if got, _ := reopened.Get("state.lastDirectory"); got != "/tmp/docs" {
		t.Fatalf("lastDirectory = %q, want %q", got, "/tmp/docs")
	}
	if got, _ := reopened.Get("state.file.0"); got != "/tmp/docs/a.md" {
		t.Fatalf("file.0 = %q, want %q", got, "/tmp/docs/a.md")
	}

	if err := reopened.Delete("state.file.0"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	again, _ := OpenFile(path)
	if _, ok := again.Get("state.file.0"); ok {
		t.Fatalf("file.0 still present after Delete")
	}
}

func TestNode_StringListTrimsStaleEntries(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "session.toml"))
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	n := NewNode(f, "state")

	if err := n.PutStringList("file", []string{"a", "b", "c"}); err != nil {
		t.Fatalf("PutStringList returned error: %v", err)
	}
	if err := n.PutStringList("file", []string{"x"}); err != nil {
		t.Fatalf("PutStringList returned error: %v", err)
	}

	got := n.GetStringList("file")
	if !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("GetStringList = %v, want [x]", got)
	}
	if _, ok := f.Get("state.file.1"); ok {
		t.Fatalf("stale state.file.1 was not removed")
	}
}

func TestSQLite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	n := NewNode(db, "state")
	if err := n.PutStringList("file", []string{"/a.md", "/b.md"}); err != nil {
		t.Fatalf("PutStringList returned error: %v", err)
	}
	if err := n.PutString("activeFile", "/b.md"); err != nil {
		t.Fatalf("PutString returned error: %v", err)
	}
	if err := n.PutString("activeFile", "/a.md"); err != nil {
		t.Fatalf("PutString (update) returned error: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite (reopen) returned error: %v", err)
	}
	defer reopened.Close()
	n = NewNode(reopened, "state")

	if got := n.GetStringList("file"); !reflect.DeepEqual(got, []string{"/a.md", "/b.md"}) {
		t.Fatalf("GetStringList = %v, want [/a.md /b.md]", got)
	}
	if got, _ := n.GetString("activeFile"); got != "/a.md" {
		t.Fatalf("activeFile = %q, want %q", got, "/a.md")
	}
	if err := n.Remove("activeFile"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, ok := n.GetString("activeFile"); ok {
		t.Fatalf("activeFile still present after Remove")
	}
}

func TestFile_BatchWritesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	n := NewNode(f, "state")

	err = n.Batch(func() error {
		if err := n.PutStringList("file", []string{"/a.md", "/b.md", "/c.md"}); err != nil {
			return err
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("file written before the batch finished")
		}
		return n.PutString("activeFile", "/b.md")
	})
	if err != nil {
		t.Fatalf("Batch returned error: %v", err)
	}
	if f.flushes != 1 {
		t.Fatalf("flushes = %d, want 1", f.flushes)
	}

	reopened, _ := OpenFile(path)
	if got := NewNode(reopened, "state").GetStringList("file"); !reflect.DeepEqual(got, []string{"/a.md", "/b.md", "/c.md"}) {
		t.Fatalf("GetStringList = %v", got)
	}
}

func TestFile_BatchWithoutChangesDoesNotWrite(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "session.toml"))
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if err := f.Put("k", "v"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	if err := f.Batch(func() error { return f.Put("k", "v") }); err != nil {
		t.Fatalf("Batch returned error: %v", err)
	}
	if f.flushes != 1 {
		t.Fatalf("flushes = %d, want 1", f.flushes)
	}
}

func TestFile_BatchReturnsCallbackErrorAndKeepsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}

	boom := errors.New("boom")
	err = f.Batch(func() error {
		_ = f.Put("k", "v")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Batch error = %v, want %v", err, boom)
	}
	reopened, _ := OpenFile(path)
	if got, _ := reopened.Get("k"); got != "v" {
		t.Fatalf("k = %q, want v", got)
	}
}

func TestNode_BatchFallsBackWithoutBatcher(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	defer db.Close()

	n := NewNode(db, "state")
	if err := n.Batch(func() error { return n.PutString("activeFile", "/a.md") }); err != nil {
		t.Fatalf("Batch returned error: %v", err)
	}
	if got, _ := n.GetString("activeFile"); got != "/a.md" {
		t.Fatalf("activeFile = %q, want /a.md", got)
	}
}
