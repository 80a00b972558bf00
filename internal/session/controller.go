package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/five82/quill/internal/document"
	"github.com/five82/quill/internal/registry"
	"github.com/five82/quill/internal/state"
	"github.com/five82/quill/internal/workflow"
)

// Filter is a named set of glob patterns offered by the open dialog.
type Filter struct {
	Name     string
	Patterns []string
}

// Dialogs are the blocking file choosers provided by the host.
type Dialogs interface {
	// ChooseOpen returns the selected files, or nil when cancelled.
	ChooseOpen(initialDir string, filters []Filter) []string
	// ChooseSave returns the chosen location, or false when cancelled.
	ChooseSave(initialDir string) (string, bool)
}

// Notifier shows blocking alerts.
type Notifier interface {
	ShowError(title, message string)
}

// FileSurface writes document content to disk.
type FileSurface interface {
	Save(path, content string) error
}

// Store is the persisted session state.
type Store interface {
	Load() state.Snapshot
	Save(openPaths []string, activePath string) error
	LastDirectory() string
	SetLastDirectory(dir string) error
	SavePreferences(p state.Preferences) error
}

// Options configure a Controller.
type Options struct {
	Registry *registry.Registry
	Store    Store
	Files    FileSurface
	Prompter workflow.Prompter
	Dialogs  Dialogs
	Notifier Notifier
	Filters  []Filter
	Logger   *zap.Logger

	// Exists reports whether a persisted path can be reopened. Defaults to
	// an os.Stat check for a non-directory.
	Exists func(path string) bool
}

// Controller binds the registry, the close workflow and the persisted state
// into the editor's user-facing operations.
type Controller struct {
	registry *registry.Registry
	store    Store
	files    FileSurface
	dialogs  Dialogs
	notifier Notifier
	filters  []Filter
	exists   func(string) bool
	log      *zap.Logger

	workflow   *workflow.Workflow
	prefs      state.Preferences
	persistErr error
}

// New returns a controller. Registry, Store, Files, Prompter, Dialogs and
// Notifier are required.
func New(opts Options) (*Controller, error) {
	switch {
	case opts.Registry == nil:
		return nil, errors.New("session requires a registry")
	case opts.Store == nil:
		return nil, errors.New("session requires a state store")
	case opts.Files == nil:
		return nil, errors.New("session requires a file surface")
	case opts.Prompter == nil || opts.Dialogs == nil || opts.Notifier == nil:
		return nil, errors.New("session requires prompt, dialog and notifier collaborators")
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	exists := opts.Exists
	if exists == nil {
		exists = fileExists
	}

	c := &Controller{
		registry: opts.Registry,
		store:    opts.Store,
		files:    opts.Files,
		dialogs:  opts.Dialogs,
		notifier: opts.Notifier,
		filters:  opts.Filters,
		exists:   exists,
		log:      log.Named("session"),
		prefs:    state.DefaultPreferences(),
	}
	c.workflow = workflow.New(opts.Registry, opts.Prompter, c, log.Named("workflow"))
	c.workflow.OnClosedAll(c.persist)
	return c, nil
}

// Registry returns the document registry.
func (c *Controller) Registry() *registry.Registry { return c.registry }

// Workflow returns the close workflow, for registering close-request handlers.
func (c *Controller) Workflow() *workflow.Workflow { return c.workflow }

// Preferences returns the current display toggles.
func (c *Controller) Preferences() state.Preferences { return c.prefs }

// Restore reopens the files of the previous session. Files that no longer
// exist are dropped silently; when nothing remains one untitled document is
// created.
func (c *Controller) Restore() state.Preferences {
	snap := c.store.Load()
	c.prefs = snap.Preferences

	existing := make([]string, 0, len(snap.Paths))
	for _, p := range snap.Paths {
		if c.exists(p) {
			existing = append(existing, p)
		} else {
			c.log.Debug("dropping missing file", zap.String("path", p))
		}
	}

	if len(existing) > 0 {
		if _, err := c.registry.OpenMany(existing, snap.ActiveIndex(existing)); err != nil {
			c.log.Warn("some files could not be restored", zap.Error(err))
		}
	}
	if c.registry.Len() == 0 {
		c.NewDocument()
	}

	c.log.Info("session restored",
		zap.Int("persisted", len(snap.Paths)),
		zap.Int("open", c.registry.Len()))
	return c.prefs
}

// NewDocument opens an untitled document.
func (c *Controller) NewDocument() *document.Document {
	doc, _ := c.registry.Create("")
	return doc
}

// Open asks for files and opens them. It returns nil when cancelled.
func (c *Controller) Open() []*document.Document {
	paths := c.dialogs.ChooseOpen(c.store.LastDirectory(), c.filters)
	if len(paths) == 0 {
		return nil
	}
	c.rememberDirectory(paths[0])
	return c.open(paths)
}

// OpenPaths opens the given files, for example from the command line.
func (c *Controller) OpenPaths(paths []string) []*document.Document {
	if len(paths) == 0 {
		return nil
	}
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		a, err := filepath.Abs(p)
		if err != nil {
			a = p
		}
		abs = append(abs, a)
	}
	return c.open(abs)
}

func (c *Controller) open(paths []string) []*document.Document {
	before := c.registry.Len()
	docs, err := c.registry.OpenMany(paths, 0)
	if err != nil {
		c.notifier.ShowError("Open", err.Error())
	}
	// OpenMany drops the untitled placeholder up front; put one back when
	// nothing replaced it.
	if before > 0 && c.registry.Len() == 0 {
		c.NewDocument()
	}
	opened := docs[:0]
	for _, d := range docs {
		if d != nil {
			opened = append(opened, d)
		}
	}
	return opened
}

// Save writes doc when it is modified, asking for a location when untitled.
func (c *Controller) Save(doc *document.Document) bool {
	if doc == nil || !doc.Modified() {
		return true
	}
	if doc.Untitled() {
		return c.SaveAs(doc)
	}
	return c.write(doc)
}

// SaveAs asks for a new location for doc and writes it there. When the
// write fails doc keeps its previous path.
func (c *Controller) SaveAs(doc *document.Document) bool {
	if doc == nil {
		return true
	}
	c.registry.Select(doc)

	path, ok := c.dialogs.ChooseSave(c.store.LastDirectory())
	if !ok || path == "" {
		return false
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if other := c.registry.Find(path); other != nil && other.ID() != doc.ID() {
		c.notifier.ShowError("Save As", fmt.Sprintf("'%s' is already open in another tab.", path))
		return false
	}

	previous := doc.Path()
	doc.SetPath(path)
	if !c.write(doc) {
		doc.SetPath(previous)
		return false
	}
	c.rememberDirectory(path)
	return true
}

// SaveAll saves every modified document. It reports false if any failed.
func (c *Controller) SaveAll() bool {
	ok := true
	for _, doc := range c.registry.Documents() {
		if !c.Save(doc) {
			ok = false
		}
	}
	return ok
}

// Close closes doc, confirming unsaved changes.
func (c *Controller) Close(doc *document.Document) bool {
	return c.workflow.CloseOne(doc, true)
}

// CloseAll closes every document and persists the session. It reports
// whether the host may terminate. The error is set only when the session
// could not be persisted; the documents are closed regardless.
func (c *Controller) CloseAll() (bool, error) {
	c.persistErr = nil
	empty := c.workflow.CloseAll()
	return empty, c.persistErr
}

// Persist records the open paths and the active path without closing
// anything. Used when the host terminates without a chance to prompt.
func (c *Controller) Persist() error {
	docs := c.registry.Documents()
	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		paths = append(paths, doc.Path())
	}
	activePath := ""
	if active := c.registry.Active(); active != nil {
		activePath = active.Path()
	}
	if err := c.store.Save(paths, activePath); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SetPreferences updates and persists the display toggles.
func (c *Controller) SetPreferences(p state.Preferences) error {
	c.prefs = p
	if err := c.store.SavePreferences(p); err != nil {
		c.log.Error("saving preferences failed", zap.Error(err))
		return err
	}
	return nil
}

func (c *Controller) write(doc *document.Document) bool {
	if err := c.files.Save(doc.Path(), doc.Content()); err != nil {
		c.log.Error("save failed", zap.String("path", doc.Path()), zap.Error(err))
		c.notifier.ShowError("Save", fmt.Sprintf("Failed to save '%s'.\n\nReason: %v", doc.Path(), err))
		return false
	}
	doc.MarkSaved()
	c.log.Info("saved", zap.String("path", doc.Path()))
	return true
}

func (c *Controller) persist(paths []string, activePath string) {
	if err := c.store.Save(paths, activePath); err != nil {
		c.log.Error("persisting session failed", zap.Error(err))
		c.persistErr = fmt.Errorf("save session: %w", err)
	}
}

func (c *Controller) rememberDirectory(path string) {
	if err := c.store.SetLastDirectory(filepath.Dir(path)); err != nil {
		c.log.Warn("saving last directory failed", zap.Error(err))
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
