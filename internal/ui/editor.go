package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/quill/internal/document"
	"github.com/five82/quill/internal/logtail"
	"github.com/five82/quill/internal/registry"
	"github.com/five82/quill/internal/session"
	"github.com/five82/quill/internal/state"
)

// intent is an operation that needs blocking prompts. The editor program
// exits with it set; Run performs it and restarts the editor.
type intent int

const (
	intentNone intent = iota
	intentOpen
	intentSave
	intentSaveAs
	intentSaveAll
	intentClose
	intentQuit
)

const (
	logTailLines   = 400
	logRefreshTick = time.Second
)

// Renderer turns document content into preview text.
type Renderer interface {
	Render(content string, kind state.PreviewType) string
}

// PlainRenderer shows the content unchanged.
type PlainRenderer struct{}

// Render implements Renderer.
func (PlainRenderer) Render(content string, _ state.PreviewType) string { return content }

// viewSync is shared across program restarts and flipped by registry events.
type viewSync struct {
	stale       bool
	unsubscribe func()
}

// Model is the editor screen.
type Model struct {
	ctrl     *session.Controller
	renderer Renderer
	logFile  string
	log      *zap.Logger

	theme Theme
	keys  keyMap
	help  help.Model

	editor  textarea.Model
	preview viewport.Model
	logs    viewport.Model

	prefs  state.Preferences
	loaded uuid.UUID
	sync   *viewSync

	// source is the document content last exchanged with the textarea and
	// synced the textarea value at that moment. The textarea rewrites some
	// text (tabs, carriage returns), so edits are detected against synced,
	// never against the document.
	source string
	synced string
	crlf   bool

	width    int
	height   int
	ready    bool
	showHelp bool
	showLogs bool

	intent intent
	notice string
}

// NewModel returns the editor screen for ctrl.
func NewModel(ctrl *session.Controller, opts Options) Model {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = PlainRenderer{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Focus()

	m := Model{
		ctrl:     ctrl,
		renderer: renderer,
		logFile:  opts.LogFile,
		log:      log.Named("ui"),
		theme:    GetTheme(opts.Theme),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		editor:   ta,
		preview:  viewport.New(0, 0),
		logs:     viewport.New(0, 0),
		prefs:    ctrl.Preferences(),
		sync:     &viewSync{stale: true},
	}

	vs := m.sync
	vs.unsubscribe = ctrl.Registry().Subscribe(func(ev registry.Event) {
		switch ev.Kind {
		case registry.EventActivated, registry.EventRemoved, registry.EventDocumentChanged:
			vs.stale = true
		}
	})
	m.refresh()
	return m
}

// Close detaches the model from the registry.
func (m Model) Close() {
	if m.sync.unsubscribe != nil {
		m.sync.unsubscribe()
		m.sync.unsubscribe = nil
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.showLogs {
		cmds = append(cmds, tickCmd(logRefreshTick))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.refresh()
		return m, nil

	case tickMsg:
		if !m.showLogs {
			return m, nil
		}
		m.loadLogs()
		return m, tickCmd(logRefreshTick)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.showLogs {
		if key.Matches(msg, m.keys.ToggleLogs, m.keys.Cancel) {
			m.showLogs = false
			return m, nil
		}
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}

	m.notice = ""
	reg := m.ctrl.Registry()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.exit(intentQuit)
	case key.Matches(msg, m.keys.Open):
		return m.exit(intentOpen)
	case key.Matches(msg, m.keys.Save):
		return m.exit(intentSave)
	case key.Matches(msg, m.keys.SaveAs):
		return m.exit(intentSaveAs)
	case key.Matches(msg, m.keys.SaveAll):
		return m.exit(intentSaveAll)
	case key.Matches(msg, m.keys.Close):
		return m.exit(intentClose)

	case key.Matches(msg, m.keys.New):
		m.ctrl.NewDocument()
	case key.Matches(msg, m.keys.Undo):
		if doc := reg.Active(); doc != nil {
			doc.Undo()
		}
	case key.Matches(msg, m.keys.Redo):
		if doc := reg.Active(); doc != nil {
			doc.Redo()
		}
	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)

	case key.Matches(msg, m.keys.TogglePreview):
		p := m.prefs
		p.Preview = !p.Preview
		m.setPreferences(p)
	case key.Matches(msg, m.keys.ToggleRaw):
		p := m.prefs
		p.RawOutput = !p.RawOutput
		m.setPreferences(p)
	case key.Matches(msg, m.keys.ToggleStructure):
		p := m.prefs
		p.StructureView = !p.StructureView
		m.setPreferences(p)

	case key.Matches(msg, m.keys.ToggleLogs):
		m.showLogs = true
		m.loadLogs()
		return m, tickCmd(logRefreshTick)
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	default:
		doc := reg.Active()
		if doc == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		if value := m.editor.Value(); value != m.synced {
			content := fromEditor(value, m.crlf)
			m.source, m.synced = content, value
			doc.Edit(content)
		}
		m.refresh()
		return m, cmd
	}

	m.refresh()
	return m, nil
}

func (m Model) exit(i intent) (tea.Model, tea.Cmd) {
	m.intent = i
	return m, tea.Quit
}

func (m *Model) cycleTab(delta int) {
	reg := m.ctrl.Registry()
	n := reg.Len()
	if n == 0 {
		return
	}
	idx := reg.Index(reg.Active())
	if idx < 0 {
		idx = 0
	}
	reg.SelectIndex((idx + delta + n) % n)
}

func (m *Model) setPreferences(p state.Preferences) {
	if err := m.ctrl.SetPreferences(p); err != nil {
		m.notice = "Could not save preferences"
	}
	m.prefs = p
	m.layout()
}

// refresh copies the active document into the textarea when the registry
// reported a change, and re-renders the preview.
func (m *Model) refresh() {
	doc := m.ctrl.Registry().Active()
	if doc == nil {
		m.loaded = uuid.Nil
		m.editor.Reset()
		m.source, m.synced, m.crlf = "", "", false
		m.preview.SetContent("")
		m.sync.stale = false
		return
	}

	if m.sync.stale || doc.ID() != m.loaded {
		if content := doc.Content(); doc.ID() != m.loaded || content != m.source {
			m.crlf = strings.Contains(content, "\r\n")
			m.editor.SetValue(toEditor(content))
			m.source, m.synced = content, m.editor.Value()
		}
		m.loaded = doc.ID()
		m.sync.stale = false
	}

	if m.prefs.PreviewType() != state.PreviewNone {
		m.preview.SetContent(m.renderer.Render(doc.Content(), m.prefs.PreviewType()))
	}
}

// perform runs the intent the editor exited with. It reports whether the
// application should terminate.
func (m *Model) perform() (bool, error) {
	reg := m.ctrl.Registry()
	active := reg.Active()
	in := m.intent
	m.intent = intentNone

	switch in {
	case intentOpen:
		if docs := m.ctrl.Open(); len(docs) > 0 {
			m.notice = plural(len(docs), "file") + " opened"
		}
	case intentSave:
		if active != nil && active.Modified() && m.ctrl.Save(active) {
			m.notice = "Saved " + active.Name()
		}
	case intentSaveAs:
		if active != nil && m.ctrl.SaveAs(active) {
			m.notice = "Saved " + active.Name()
		}
	case intentSaveAll:
		if m.ctrl.SaveAll() {
			m.notice = "All documents saved"
		}
	case intentClose:
		if active != nil && m.ctrl.Close(active) {
			m.notice = "Closed " + active.Name()
		}
	case intentQuit:
		done, err := m.ctrl.CloseAll()
		if err != nil {
			return true, err
		}
		if done {
			return true, nil
		}
	}

	m.sync.stale = true
	m.refresh()
	return false, nil
}

func (m *Model) loadLogs() {
	lines, err := logtail.Read(m.logFile, logTailLines)
	if err != nil {
		m.logs.SetContent(m.theme.Styles().DangerText.Render(err.Error()))
		return
	}
	m.logs.SetContent(m.renderLogLines(lines))
	m.logs.GotoBottom()
}

// toEditor converts document line endings for the textarea, which treats a
// lone carriage return as a line break.
func toEditor(content string) string {
	return strings.ReplaceAll(content, "\r\n", "\n")
}

// fromEditor restores the document's line endings on edited text.
func fromEditor(value string, crlf bool) string {
	if !crlf {
		return value
	}
	return strings.ReplaceAll(value, "\n", "\r\n")
}

func activeState(doc *document.Document) (document.State, bool) {
	if doc == nil {
		return document.State{}, false
	}
	return doc.State(), true
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
