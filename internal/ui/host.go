package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/quill/internal/session"
	"github.com/five82/quill/internal/workflow"
)

// Host provides the blocking prompts and file dialogs used by the session
// controller. Each call runs its own Bubble Tea program and returns when the
// user answers.
type Host struct {
	theme   Theme
	keys    keyMap
	log     *zap.Logger
	options []tea.ProgramOption
}

var (
	_ workflow.Prompter = (*Host)(nil)
	_ session.Dialogs   = (*Host)(nil)
	_ session.Notifier  = (*Host)(nil)
)

// NewHost returns a host drawing with the named theme. Extra program options
// are passed to every dialog program.
func NewHost(themeName string, log *zap.Logger, opts ...tea.ProgramOption) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{
		theme:   GetTheme(themeName),
		keys:    DefaultKeyMap(),
		log:     log.Named("host"),
		options: opts,
	}
}

// SetTheme changes the theme used by subsequent dialogs.
func (h *Host) SetTheme(theme Theme) { h.theme = theme }

// PromptYesNoCancel implements workflow.Prompter.
func (h *Host) PromptYesNoCancel(title, message string) workflow.Answer {
	m := newConfirmModel(h.theme, h.keys, title, message)
	if final, ok := h.run(m).(confirmModel); ok {
		return final.answer
	}
	return workflow.AnswerCancel
}

// ShowError implements session.Notifier.
func (h *Host) ShowError(title, message string) {
	h.log.Warn("alert", zap.String("title", title), zap.String("message", message))
	h.run(newAlertModel(h.theme, h.keys, title, message))
}

// ChooseOpen implements session.Dialogs.
func (h *Host) ChooseOpen(initialDir string, filters []session.Filter) []string {
	m := newOpenModel(h.theme, h.keys, initialDir, filters)
	if final, ok := h.run(m).(openModel); ok {
		return final.result
	}
	return nil
}

// ChooseSave implements session.Dialogs.
func (h *Host) ChooseSave(initialDir string) (string, bool) {
	m := newSaveModel(h.theme, h.keys, initialDir)
	if final, ok := h.run(m).(saveModel); ok {
		return final.path, final.ok
	}
	return "", false
}

// run blocks until the dialog program exits. On failure the initial model
// is returned, which holds the cancel answer.
func (h *Host) run(m tea.Model) tea.Model {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, h.options...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		h.log.Error("dialog failed", zap.Error(err))
		return m
	}
	return final
}
