package ui

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// Open dialog listing limits.
const (
	listMaxDepth = 3
	listMaxFiles = 2000
)

// listFiles returns the files below root whose base name matches one of
// patterns, sorted and cut to the first limit entries. Hidden directories
// and anything deeper than maxDepth levels are skipped.
func listFiles(root string, patterns []string, maxDepth, limit int) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		depth := strings.Count(rel, string(os.PathSeparator))

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || depth+1 >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !matchesAny(patterns, d.Name()) {
			return nil
		}

		mu.Lock()
		files = append(files, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The walk is concurrent, so cut only after sorting.
	sort.Strings(files)
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

// matchesAny reports whether name matches one of the glob patterns,
// ignoring case. No patterns matches everything.
func matchesAny(patterns []string, name string) bool {
	if len(patterns) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(strings.ToLower(pattern), lower); err == nil && ok {
			return true
		}
	}
	return false
}
