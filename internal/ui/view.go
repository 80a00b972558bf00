package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quill/internal/logtail"
	"github.com/five82/quill/internal/state"
)

// Terminal width below which the preview pane is hidden.
const layoutPreviewWidth = 80

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	// Show log overlay if active
	if m.showLogs {
		return m.renderLogs()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		m.renderBody(),
		m.renderStatus(),
	)
}

// layout sizes the editor and preview panes for the current window.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyHeight := max(m.height-2, 1)

	editorWidth := m.width
	if m.previewVisible() {
		editorWidth = m.width / 2
		// Pane border takes two columns and two rows
		m.preview.Width = max(m.width-editorWidth-2, 1)
		m.preview.Height = max(bodyHeight-2, 1)
	}
	m.editor.SetWidth(max(editorWidth, 1))
	m.editor.SetHeight(bodyHeight)

	m.logs.Width = max(m.width-4, 1)
	m.logs.Height = max(m.height-4, 1)
	m.help.Width = m.width
}

func (m Model) previewVisible() bool {
	return m.prefs.PreviewType() != state.PreviewNone && m.width >= layoutPreviewWidth
}

// renderTabs renders one tab per open document, marking modified ones.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	reg := m.ctrl.Registry()
	active := reg.Active()

	var tabs []string
	for _, doc := range reg.Documents() {
		title := doc.Name()
		if doc.Modified() {
			title += " *"
		}
		if active != nil && doc.ID() == active.ID() {
			tabs = append(tabs, styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, styles.Tab.Render(title))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return styles.Bar.Width(m.width).MaxWidth(m.width).Render(row)
}

func (m Model) renderBody() string {
	styles := m.theme.Styles()
	bodyHeight := max(m.height-2, 1)

	if m.ctrl.Registry().Active() == nil {
		empty := styles.FaintText.Render("No open documents. Press ctrl+n for a new one or ctrl+o to open files.")
		return lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, empty)
	}

	editor := m.editor.View()
	if !m.previewVisible() {
		return editor
	}

	title := styles.MutedText.Render(previewTitle(m.prefs.PreviewType()))
	pane := styles.Pane.Render(m.preview.View())
	preview := lipgloss.JoinVertical(lipgloss.Left, title, pane)
	return lipgloss.JoinHorizontal(lipgloss.Top, editor, preview)
}

func previewTitle(t state.PreviewType) string {
	switch t {
	case state.PreviewSource:
		return " Raw output"
	case state.PreviewAST:
		return " Structure"
	default:
		return " Preview"
	}
}

// renderStatus renders the document state on the left and key hints on the
// right.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	reg := m.ctrl.Registry()

	var left []string
	if st, ok := activeState(reg.Active()); ok {
		name := reg.Active().Name()
		if st.Modified {
			left = append(left, styles.WarningText.Render(name+" (modified)"))
		} else {
			left = append(left, styles.Text.Render(name))
		}
		left = append(left, undoRedoLabel(st.CanUndo, st.CanRedo))
	}
	left = append(left, plural(reg.Len(), "document")+" open")
	if reg.AnyModified() {
		left = append(left, styles.WarningText.Render("unsaved changes"))
	}
	if m.notice != "" {
		left = append(left, styles.SuccessText.Render(m.notice))
	}

	leftText := strings.Join(left, styles.FaintText.Render(" • "))
	hints := m.help.ShortHelpView(m.keys.ShortHelp())

	gap := max(m.width-lipgloss.Width(leftText)-lipgloss.Width(hints)-2, 1)
	line := leftText + strings.Repeat(" ", gap) + hints
	return styles.StatusBar.Width(m.width).MaxWidth(m.width).Render(line)
}

func undoRedoLabel(canUndo, canRedo bool) string {
	switch {
	case canUndo && canRedo:
		return "undo/redo"
	case canUndo:
		return "undo"
	case canRedo:
		return "redo"
	default:
		return "no history"
	}
}

// renderLogs renders the log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	title := styles.AccentText.Bold(true).Render("Log")
	if m.logFile != "" {
		title += styles.FaintText.Render("  " + m.logFile)
	}
	pane := styles.Pane.
		Width(max(m.width-2, 1)).
		Height(max(m.height-4, 1)).
		Render(m.logs.View())
	footer := styles.FaintText.Render("ctrl+l/esc close • ↑/↓ scroll")

	return lipgloss.JoinVertical(lipgloss.Left, title, pane, footer)
}

// renderLogLines formats log lines, coloring the level of JSON entries.
func (m Model) renderLogLines(lines []string) string {
	if len(lines) == 0 {
		return m.theme.Styles().FaintText.Render("No log entries")
	}

	styles := m.theme.Styles()
	out := make([]string, len(lines))
	for i, line := range lines {
		e := logtail.Parse(line)
		if e.Raw != "" || e.Level == "" {
			out[i] = styles.Text.Render(line)
			continue
		}
		stamp := ""
		if !e.Time.IsZero() {
			stamp = styles.FaintText.Render(e.Time.Format("15:04:05")) + " "
		}
		out[i] = stamp + styles.LevelStyle(e.Level).Render(fmt.Sprintf("%-5s", e.Level)) + " " + e.Body()
	}
	return strings.Join(out, "\n")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
