// Package document models one open file: its location, its edit history and
// the derived modified/undo/redo state that the rest of the editor observes.
package document

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/five82/quill/internal/history"
)

// UntitledName is shown for documents that have never been saved.
const UntitledName = "Untitled"

// State is the observable part of a Document.
type State struct {
	Path     string
	Modified bool
	CanUndo  bool
	CanRedo  bool
}

// Document is a single open file. A Document with an empty path is untitled.
type Document struct {
	id      uuid.UUID
	path    string
	history *history.History

	listeners map[int]func(State)
	nextID    int
	last      State
}

// New creates an untouched document. The content is the marked position of
// its history, so a freshly loaded document is not modified.
func New(path, content string) *Document {
	d := &Document{
		id:        uuid.New(),
		path:      cleanPath(path),
		history:   history.New(content, history.DefaultLimit),
		listeners: make(map[int]func(State)),
	}
	d.last = d.State()
	return d
}

// ID returns the stable identifier of the document.
func (d *Document) ID() uuid.UUID { return d.id }

// Path returns the file location, or "" when untitled.
func (d *Document) Path() string { return d.path }

// Untitled reports whether the document has no file location.
func (d *Document) Untitled() bool { return d.path == "" }

// Name returns the base name of the path, or UntitledName.
func (d *Document) Name() string {
	if d.path == "" {
		return UntitledName
	}
	return filepath.Base(d.path)
}

// Content returns the current text.
func (d *Document) Content() string { return d.history.Current() }

// Modified reports whether the history has moved away from the last mark.
func (d *Document) Modified() bool { return !d.history.AtMark() }

// CanUndo reports whether Undo would change the content.
func (d *Document) CanUndo() bool { return d.history.UndoAvailable() }

// CanRedo reports whether Redo would change the content.
func (d *Document) CanRedo() bool { return d.history.RedoAvailable() }

// State returns a snapshot of the observable state.
func (d *Document) State() State {
	return State{
		Path:     d.path,
		Modified: d.Modified(),
		CanUndo:  d.CanUndo(),
		CanRedo:  d.CanRedo(),
	}
}

// SetPath changes the file location.
func (d *Document) SetPath(path string) {
	d.path = cleanPath(path)
	d.notify()
}

// Edit records content as a new history entry.
func (d *Document) Edit(content string) {
	if d.history.Record(content) {
		d.notify()
	}
}

// Undo steps back one history entry.
func (d *Document) Undo() bool {
	_, ok := d.history.Undo()
	if ok {
		d.notify()
	}
	return ok
}

// Redo steps forward one history entry.
func (d *Document) Redo() bool {
	_, ok := d.history.Redo()
	if ok {
		d.notify()
	}
	return ok
}

// MarkSaved records the current position as saved.
func (d *Document) MarkSaved() {
	d.history.Mark()
	d.notify()
}

// Reset replaces the content, forgets the history and marks the result.
func (d *Document) Reset(content string) {
	d.history.Reset(content)
	d.notify()
}

// Subscribe registers fn to be called whenever State changes. The returned
// function removes the subscription and may be called more than once.
func (d *Document) Subscribe(fn func(State)) (unsubscribe func()) {
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	return func() { delete(d.listeners, id) }
}

// Subscribers returns the number of active subscriptions.
func (d *Document) Subscribers() int { return len(d.listeners) }

func (d *Document) notify() {
	now := d.State()
	if now == d.last {
		return
	}
	d.last = now
	for _, fn := range d.listeners {
		fn(now)
	}
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}
