package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
}

func TestListFiles_FiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"b.md",
		"a.MD",
		"notes.txt",
		"docs/guide.markdown",
		".git/HEAD.md",
		"one/two/three/deep.md",
	)

	got, err := listFiles(root, []string{"*.md", "*.markdown"}, 3, 100)
	if err != nil {
		t.Fatalf("listFiles: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.MD"),
		filepath.Join(root, "b.md"),
		filepath.Join(root, "docs", "guide.markdown"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("listFiles = %v, want %v", got, want)
	}
}

func TestListFiles_LimitKeepsFirstInOrder(t *testing.T) {
	root := t.TempDir()
	var names []string
	for i := 0; i < 60; i++ {
		names = append(names, fmt.Sprintf("d%d/f%02d.md", i%4, i))
	}
	writeTree(t, root, names...)

	want := []string{
		filepath.Join(root, "d0", "f00.md"),
		filepath.Join(root, "d0", "f04.md"),
		filepath.Join(root, "d0", "f08.md"),
	}
	// The walk order varies between runs; the cut must not.
	for run := 0; run < 5; run++ {
		got, err := listFiles(root, nil, 3, 3)
		if err != nil {
			t.Fatalf("listFiles: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: listFiles = %v, want %v", run, got, want)
		}
	}
}

func TestMatchesAny(t *testing.T) {
	cases := []struct {
		patterns []string
		name     string
		want     bool
	}{
		{nil, "anything", true},
		{[]string{"*"}, "README", true},
		{[]string{"*.md"}, "README.md", true},
		{[]string{"*.md"}, "README.MD", true},
		{[]string{"*.md", "*.mkd"}, "x.mkd", true},
		{[]string{"*.md"}, "x.txt", false},
	}
	for _, tc := range cases {
		if got := matchesAny(tc.patterns, tc.name); got != tc.want {
			t.Fatalf("matchesAny(%v, %q) = %v, want %v", tc.patterns, tc.name, got, tc.want)
		}
	}
}
