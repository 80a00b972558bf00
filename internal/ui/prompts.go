package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quill/internal/workflow"
)

const modalWidth = 56

// confirmModel is the Yes/No/Cancel prompt.
type confirmModel struct {
	theme Theme
	keys  keyMap

	title   string
	message string
	buttons []workflow.Answer
	focus   int
	answer  workflow.Answer

	width  int
	height int
}

func newConfirmModel(theme Theme, keys keyMap, title, message string) confirmModel {
	return confirmModel{
		theme:   theme,
		keys:    keys,
		title:   title,
		message: message,
		buttons: []workflow.Answer{workflow.AnswerYes, workflow.AnswerNo, workflow.AnswerCancel},
		answer:  workflow.AnswerCancel,
	}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.answer = workflow.AnswerYes
			return m, tea.Quit
		case key.Matches(msg, m.keys.No):
			m.answer = workflow.AnswerNo
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.answer = workflow.AnswerCancel
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.focus = (m.focus + len(m.buttons) - 1) % len(m.buttons)
		case key.Matches(msg, m.keys.Right):
			m.focus = (m.focus + 1) % len(m.buttons)
		case key.Matches(msg, m.keys.Confirm):
			m.answer = m.buttons[m.focus]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	styles := m.theme.Styles()

	buttons := make([]string, len(m.buttons))
	for i, a := range m.buttons {
		label := buttonLabel(a)
		if i == m.focus {
			buttons[i] = styles.ButtonFocused.Render(label)
		} else {
			buttons[i] = styles.Button.Render(label)
		}
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Width(modalWidth - 6).Render(m.message))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))

	return placeModal(m.theme, m.width, m.height, b.String())
}

func buttonLabel(a workflow.Answer) string {
	switch a {
	case workflow.AnswerYes:
		return "Yes"
	case workflow.AnswerNo:
		return "No"
	default:
		return "Cancel"
	}
}

// alertModel shows an error until it is dismissed.
type alertModel struct {
	theme Theme
	keys  keyMap

	title   string
	message string

	width  int
	height int
}

func newAlertModel(theme Theme, keys keyMap, title, message string) alertModel {
	return alertModel{theme: theme, keys: keys, title: title, message: message}
}

func (m alertModel) Init() tea.Cmd { return nil }

func (m alertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Confirm, m.keys.Cancel) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m alertModel) View() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Width(modalWidth - 6).Render(m.message))
	b.WriteString("\n\n")
	b.WriteString(styles.ButtonFocused.Render("OK"))

	return placeModal(m.theme, m.width, m.height, b.String())
}

// placeModal centers content in a bordered box.
func placeModal(theme Theme, width, height int, content string) string {
	box := theme.Styles().Modal.Width(modalWidth).Render(content)
	if width == 0 || height == 0 {
		return box
	}
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
