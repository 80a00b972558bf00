// Package prefs provides the key-value persistence used for editor state.
// Values live in a Backend (a TOML file or a SQLite database) and are read
// and written through a Node, which scopes keys and encodes string lists as
// numbered keys (name.0, name.1, ...).
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Backend stores raw string values by key.
type Backend interface {
	Get(key string) (string, bool)
	Put(key, value string) error
	Delete(key string) error
	Close() error
}

// batcher is implemented by backends that can group several writes.
type batcher interface {
	Batch(fn func() error) error
}

// Node is a scoped view of a Backend.
type Node struct {
	backend Backend
	scope   string
}

// NewNode returns a node whose keys are prefixed with scope.
func NewNode(backend Backend, scope string) *Node {
	return &Node{backend: backend, scope: strings.Trim(scope, ".")}
}

func (n *Node) key(name string) string {
	if n.scope == "" {
		return name
	}
	return n.scope + "." + name
}

// GetString returns the value stored under name.
func (n *Node) GetString(name string) (string, bool) {
	return n.backend.Get(n.key(name))
}

// PutString stores value under name.
func (n *Node) PutString(name, value string) error {
	return n.backend.Put(n.key(name), value)
}

// Remove deletes name. Removing a missing key is not an error.
func (n *Node) Remove(name string) error {
	return n.backend.Delete(n.key(name))
}

// Batch runs fn so that the backend can persist its writes together.
// Backends without batching run fn directly.
func (n *Node) Batch(fn func() error) error {
	if b, ok := n.backend.(batcher); ok {
		return b.Batch(fn)
	}
	return fn()
}

// GetStringList returns name.0, name.1, ... up to the first missing index.
func (n *Node) GetStringList(name string) []string {
	var values []string
	for i := 0; ; i++ {
		v, ok := n.GetString(listKey(name, i))
		if !ok {
			return values
		}
		values = append(values, v)
	}
}

// PutStringList stores values as name.0..name.N-1 and removes any entries
// left over from a longer list.
func (n *Node) PutStringList(name string, values []string) error {
	for i, v := range values {
		if err := n.PutString(listKey(name, i), v); err != nil {
			return fmt.Errorf("put %s: %w", listKey(name, i), err)
		}
	}
	for i := len(values); ; i++ {
		if _, ok := n.GetString(listKey(name, i)); !ok {
			return nil
		}
		if err := n.Remove(listKey(name, i)); err != nil {
			return fmt.Errorf("remove %s: %w", listKey(name, i), err)
		}
	}
}

func listKey(name string, i int) string {
	return name + "." + strconv.Itoa(i)
}

func resolvePath(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(fallback)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
