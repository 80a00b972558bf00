package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/quill/internal/session"
)

// Options configure the UI runtime.
type Options struct {
	Host     *Host
	Renderer Renderer
	LogFile  string
	Theme    string
	Logger   *zap.Logger

	// ProgramOptions are passed to the editor program, e.g. for tests.
	ProgramOptions []tea.ProgramOption
}

// Run shows the editor until the user quits and every document has been
// closed, or until ctx is cancelled. Operations that need prompts stop the
// editor program, run their dialogs, and restart it.
func Run(ctx context.Context, ctrl *session.Controller, opts Options) error {
	if ctrl == nil {
		return fmt.Errorf("ui requires a session controller")
	}

	m := NewModel(ctrl, opts)
	defer m.Close()

	for {
		programOpts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts.ProgramOptions...)
		final, err := tea.NewProgram(m, programOpts...).Run()

		if ctx.Err() != nil {
			// Terminated from outside: keep the session for the next start.
			m.log.Info("terminated, persisting session")
			return ctrl.Persist()
		}
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run editor: %w", err)
		}

		if next, ok := final.(Model); ok {
			m = next
		}
		if opts.Host != nil {
			opts.Host.SetTheme(m.theme)
		}

		m.log.Debug("performing", zap.Int("intent", int(m.intent)))
		done, err := m.perform()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}
