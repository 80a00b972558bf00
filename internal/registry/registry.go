// Package registry owns the ordered set of open documents and tracks which
// one is active.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/quill/internal/document"
)

// Loader reads the content of a file for a newly opened document.
type Loader interface {
	Load(path string) (string, error)
}

// EventKind identifies what changed in the registry.
type EventKind int

const (
	EventAdded EventKind = iota
	EventRemoved
	EventActivated
	EventDocumentChanged
	EventAnyModifiedChanged
)

// Event is delivered to registry subscribers.
type Event struct {
	Kind     EventKind
	Document *document.Document
}

// Registry holds the open documents in tab order.
type Registry struct {
	loader Loader
	log    *zap.Logger

	docs        []*document.Document
	active      uuid.UUID
	anyModified bool
	unsubscribe map[uuid.UUID]func()

	listeners map[int]func(Event)
	nextID    int
}

// New returns an empty registry.
func New(loader Loader, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		loader:      loader,
		log:         log,
		unsubscribe: make(map[uuid.UUID]func()),
		listeners:   make(map[int]func(Event)),
	}
}

// Create opens path, or an untitled document when path is empty, and makes
// it active. A path that is already open is activated instead of duplicated.
func (r *Registry) Create(path string) (*document.Document, error) {
	if path != "" {
		if existing := r.Find(path); existing != nil {
			r.activate(existing)
			return existing, nil
		}
	}
	doc, err := r.newDocument(path)
	if err != nil {
		return nil, err
	}
	r.add(doc)
	r.activate(doc)
	return doc, nil
}

// OpenMany opens paths in order, reusing documents that are already open.
// The document for paths[activeIndex] becomes active. A lone untitled,
// unmodified document is closed first. Paths that fail to load are skipped
// and their errors returned joined; the result has a nil entry for them.
func (r *Registry) OpenMany(paths []string, activeIndex int) ([]*document.Document, error) {
	if len(r.docs) == 1 {
		if only := r.docs[0]; only.Untitled() && !only.Modified() {
			r.Remove(only)
		}
	}

	var errs []error
	opened := make([]*document.Document, len(paths))
	for i, path := range paths {
		doc := r.Find(path)
		if doc == nil {
			var err error
			doc, err = r.newDocument(path)
			if err != nil {
				r.log.Warn("open failed", zap.String("path", path), zap.Error(err))
				errs = append(errs, err)
				continue
			}
			r.add(doc)
		}
		if i == activeIndex {
			r.activate(doc)
		}
		opened[i] = doc
	}
	if r.Active() == nil && len(r.docs) > 0 {
		r.activate(r.docs[len(r.docs)-1])
	}
	return opened, errors.Join(errs...)
}

// Remove detaches doc. When doc was active, the tab that takes its place
// becomes active, or the previous one when doc was last.
func (r *Registry) Remove(doc *document.Document) bool {
	idx := r.Index(doc)
	if idx < 0 {
		return false
	}
	wasActive := doc.ID() == r.active

	r.docs = append(r.docs[:idx], r.docs[idx+1:]...)
	if unsubscribe, ok := r.unsubscribe[doc.ID()]; ok {
		unsubscribe()
		delete(r.unsubscribe, doc.ID())
	}
	r.log.Debug("document removed", zap.String("name", doc.Name()), zap.Int("open", len(r.docs)))
	r.emit(Event{Kind: EventRemoved, Document: doc})

	if wasActive {
		switch {
		case len(r.docs) == 0:
			r.active = uuid.Nil
			r.emit(Event{Kind: EventActivated})
		case idx < len(r.docs):
			r.activate(r.docs[idx])
		default:
			r.activate(r.docs[len(r.docs)-1])
		}
	}
	r.recompute()
	return true
}

// Find returns the open document for path, or nil.
func (r *Registry) Find(path string) *document.Document {
	if path == "" {
		return nil
	}
	clean := filepath.Clean(path)
	for _, doc := range r.docs {
		if doc.Path() == clean {
			return doc
		}
	}
	return nil
}

// AnyModified reports whether at least one open document is modified.
func (r *Registry) AnyModified() bool { return r.anyModified }

// Active returns the active document, or nil when none is open.
func (r *Registry) Active() *document.Document {
	if r.active == uuid.Nil {
		return nil
	}
	for _, doc := range r.docs {
		if doc.ID() == r.active {
			return doc
		}
	}
	return nil
}

// Select makes doc active. It reports false when doc is not open.
func (r *Registry) Select(doc *document.Document) bool {
	if r.Index(doc) < 0 {
		return false
	}
	r.activate(doc)
	return true
}

// SelectIndex makes the document at tab index i active.
func (r *Registry) SelectIndex(i int) bool {
	if i < 0 || i >= len(r.docs) {
		return false
	}
	r.activate(r.docs[i])
	return true
}

// Documents returns the open documents in tab order.
func (r *Registry) Documents() []*document.Document {
	return append([]*document.Document(nil), r.docs...)
}

// Len returns the number of open documents.
func (r *Registry) Len() int { return len(r.docs) }

// Index returns the tab index of doc, or -1.
func (r *Registry) Index(doc *document.Document) int {
	if doc == nil {
		return -1
	}
	for i, d := range r.docs {
		if d.ID() == doc.ID() {
			return i
		}
	}
	return -1
}

// Subscribe registers fn for registry events.
func (r *Registry) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return func() { delete(r.listeners, id) }
}

func (r *Registry) newDocument(path string) (*document.Document, error) {
	if path == "" {
		return document.New("", ""), nil
	}
	if r.loader == nil {
		return nil, fmt.Errorf("open %s: no loader configured", path)
	}
	content, err := r.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return document.New(path, content), nil
}

func (r *Registry) add(doc *document.Document) {
	r.docs = append(r.docs, doc)
	r.unsubscribe[doc.ID()] = doc.Subscribe(func(document.State) {
		r.emit(Event{Kind: EventDocumentChanged, Document: doc})
		r.recompute()
	})
	r.log.Debug("document added", zap.String("name", doc.Name()), zap.Int("open", len(r.docs)))
	r.emit(Event{Kind: EventAdded, Document: doc})
	r.recompute()
}

func (r *Registry) activate(doc *document.Document) {
	if r.active == doc.ID() {
		return
	}
	r.active = doc.ID()
	r.emit(Event{Kind: EventActivated, Document: doc})
}

func (r *Registry) recompute() {
	modified := false
	for _, doc := range r.docs {
		if doc.Modified() {
			modified = true
			break
		}
	}
	if modified == r.anyModified {
		return
	}
	r.anyModified = modified
	r.emit(Event{Kind: EventAnyModifiedChanged})
}

func (r *Registry) emit(ev Event) {
	for _, fn := range r.listeners {
		fn(ev)
	}
}
