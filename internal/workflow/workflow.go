// Package workflow decides whether documents may be closed, asking the user
// to save, discard or cancel when a document has unsaved changes.
package workflow

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/quill/internal/document"
	"github.com/five82/quill/internal/registry"
)

// Answer is the user's reply to a Yes/No/Cancel prompt.
type Answer int

const (
	AnswerCancel Answer = iota
	AnswerYes
	AnswerNo
)

func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	default:
		return "cancel"
	}
}

// Decision is the outcome of a close confirmation.
type Decision int

const (
	Abort Decision = iota
	Proceed
)

func (d Decision) String() string {
	if d == Proceed {
		return "proceed"
	}
	return "abort"
}

// Prompter asks the user a blocking Yes/No/Cancel question.
type Prompter interface {
	PromptYesNoCancel(title, message string) Answer
}

// Saver saves a document, asking for a location when it is untitled.
// It reports false when the save failed or was cancelled.
type Saver interface {
	Save(doc *document.Document) bool
}

// CloseRequestFunc is consulted before a document is closed through the
// host. Returning false vetoes the close.
type CloseRequestFunc func(doc *document.Document) bool

// ClosedAllFunc receives the paths of all documents closed by CloseAll, in
// tab order, and the path of the document that was active.
type ClosedAllFunc func(paths []string, activePath string)

// Workflow runs close confirmations against a registry.
type Workflow struct {
	registry *registry.Registry
	prompt   Prompter
	saver    Saver
	log      *zap.Logger

	handlers    map[int]CloseRequestFunc
	nextID      int
	onClosedAll ClosedAllFunc
}

// New returns a workflow for reg. The built-in close-request handler runs
// ConfirmClose; more handlers can be added with OnCloseRequest.
func New(reg *registry.Registry, prompt Prompter, saver Saver, log *zap.Logger) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Workflow{
		registry: reg,
		prompt:   prompt,
		saver:    saver,
		log:      log,
		handlers: make(map[int]CloseRequestFunc),
	}
	w.OnCloseRequest(func(doc *document.Document) bool {
		return w.ConfirmClose(doc) == Proceed
	})
	return w
}

// OnCloseRequest registers fn as a close-request handler.
func (w *Workflow) OnCloseRequest(fn CloseRequestFunc) (unsubscribe func()) {
	id := w.nextID
	w.nextID++
	w.handlers[id] = fn
	return func() { delete(w.handlers, id) }
}

// OnClosedAll sets the hook run after CloseAll removed every document.
func (w *Workflow) OnClosedAll(fn ClosedAllFunc) { w.onClosedAll = fn }

// ConfirmClose asks about unsaved changes in doc.
func (w *Workflow) ConfirmClose(doc *document.Document) Decision {
	if !doc.Modified() {
		return Proceed
	}

	answer := w.prompt.PromptYesNoCancel("Close",
		fmt.Sprintf("'%s' has been modified. Save changes?", doc.Name()))
	w.log.Debug("close prompt answered", zap.String("name", doc.Name()), zap.Stringer("answer", answer))

	switch answer {
	case AnswerYes:
		if w.saver != nil && w.saver.Save(doc) {
			return Proceed
		}
		return Abort
	case AnswerNo:
		return Proceed
	default:
		return Abort
	}
}

// CloseOne closes doc. With viaHostEvent the close-request handlers run
// first and any of them may veto; otherwise doc is detached immediately.
func (w *Workflow) CloseOne(doc *document.Document, viaHostEvent bool) bool {
	if doc == nil {
		return true
	}
	if viaHostEvent {
		for id := 0; id < w.nextID; id++ {
			handler, ok := w.handlers[id]
			if !ok {
				continue
			}
			if !handler(doc) {
				w.log.Info("close vetoed", zap.String("name", doc.Name()))
				return false
			}
		}
	}
	w.registry.Remove(doc)
	return true
}

// CloseAll confirms every modified document, active one first, then closes
// them all. It stops at the first cancellation. On success the ClosedAll
// hook runs before CloseAll reports whether the registry is empty.
func (w *Workflow) CloseAll() bool {
	all := w.registry.Documents()
	active := w.registry.Active()

	if active != nil && w.ConfirmClose(active) == Abort {
		w.log.Info("close all aborted", zap.String("name", active.Name()))
		return false
	}

	for _, doc := range all {
		if active != nil && doc.ID() == active.ID() {
			continue
		}
		if !doc.Modified() {
			continue
		}
		w.registry.Select(doc)
		if w.ConfirmClose(doc) == Abort {
			w.log.Info("close all aborted", zap.String("name", doc.Name()))
			return false
		}
	}

	paths := make([]string, 0, len(all))
	for _, doc := range all {
		paths = append(paths, doc.Path())
	}
	activePath := ""
	if active != nil {
		activePath = active.Path()
	}

	for _, doc := range all {
		if !w.CloseOne(doc, false) {
			return false
		}
	}

	if w.onClosedAll != nil {
		w.onClosedAll(paths, activePath)
	}
	w.log.Info("closed all documents", zap.Int("count", len(all)))
	return w.registry.Len() == 0
}
