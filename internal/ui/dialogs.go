package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quill/internal/session"
)

const dialogRows = 12

// openModel lists files below a directory and lets the user pick several.
type openModel struct {
	theme Theme
	keys  keyMap

	dir       string
	filters   []session.Filter
	filterIdx int

	entries  []string
	cursor   int
	offset   int
	selected map[string]bool
	err      error

	result []string

	width  int
	height int
}

func newOpenModel(theme Theme, keys keyMap, dir string, filters []session.Filter) openModel {
	if len(filters) == 0 {
		filters = []session.Filter{{Name: "All Files", Patterns: []string{"*"}}}
	}
	m := openModel{
		theme:    theme,
		keys:     keys,
		dir:      dir,
		filters:  filters,
		selected: make(map[string]bool),
	}
	m.reload()
	return m
}

func (m *openModel) reload() {
	m.entries, m.err = listFiles(m.dir, m.filters[m.filterIdx].Patterns, listMaxDepth, listMaxFiles)
	m.cursor, m.offset = 0, 0
}

func (m openModel) Init() tea.Cmd { return nil }

func (m openModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.result = nil
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			m.result = m.chosen()
			if len(m.result) == 0 {
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Select):
			if m.cursor < len(m.entries) {
				p := m.entries[m.cursor]
				m.selected[p] = !m.selected[p]
				m.move(1)
			}
		case key.Matches(msg, m.keys.Filter):
			m.filterIdx = (m.filterIdx + 1) % len(m.filters)
			m.reload()
		case key.Matches(msg, m.keys.Parent):
			if parent := filepath.Dir(m.dir); parent != m.dir {
				m.dir = parent
				m.selected = make(map[string]bool)
				m.reload()
			}
		}
	}
	return m, nil
}

// chosen returns the marked entries in listing order, or the entry under
// the cursor when nothing is marked.
func (m openModel) chosen() []string {
	var out []string
	for _, p := range m.entries {
		if m.selected[p] {
			out = append(out, p)
		}
	}
	if len(out) == 0 && m.cursor < len(m.entries) {
		out = []string{m.entries[m.cursor]}
	}
	return out
}

func (m *openModel) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.entries)-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+dialogRows {
		m.offset = m.cursor - dialogRows + 1
	}
}

func (m openModel) View() string {
	styles := m.theme.Styles()
	filter := m.filters[m.filterIdx]

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Open"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(truncateLeft(m.dir, modalWidth-6)))
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render(fmt.Sprintf("%s (%s)", filter.Name, strings.Join(filter.Patterns, ", "))))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.DangerText.Render(m.err.Error()))
		b.WriteString("\n")
	case len(m.entries) == 0:
		b.WriteString(styles.FaintText.Render("No matching files"))
		b.WriteString("\n")
	default:
		end := min(m.offset+dialogRows, len(m.entries))
		for i := m.offset; i < end; i++ {
			p := m.entries[i]
			mark := "  "
			if m.selected[p] {
				mark = "✓ "
			}
			rel, err := filepath.Rel(m.dir, p)
			if err != nil {
				rel = p
			}
			line := truncateLeft(mark+rel, modalWidth-6)
			if i == m.cursor {
				b.WriteString(styles.Selected.Render(line))
			} else {
				b.WriteString(styles.Text.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("space select • tab filter • backspace up • enter open • esc cancel"))

	return placeModal(m.theme, m.width, m.height, b.String())
}

// saveModel asks for a file location.
type saveModel struct {
	theme Theme
	keys  keyMap

	input   textinput.Model
	pending string // path awaiting overwrite confirmation
	problem string

	path string
	ok   bool

	width  int
	height int
}

func newSaveModel(theme Theme, keys keyMap, dir string) saveModel {
	ti := textinput.New()
	ti.Placeholder = "path/to/file.md"
	ti.CharLimit = 4096
	ti.Width = modalWidth - 8
	ti.SetValue(dir + string(os.PathSeparator))
	ti.CursorEnd()
	ti.Focus()
	return saveModel{theme: theme, keys: keys, input: ti}
}

func (m saveModel) Init() tea.Cmd { return textinput.Blink }

func (m saveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.ok = false
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			return m.submit()
		}
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.pending, m.problem = "", ""
	}
	return m, cmd
}

func (m saveModel) submit() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.input.Value())
	if path == "" || strings.HasSuffix(path, string(os.PathSeparator)) {
		m.problem = "Enter a file name"
		return m, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		m.problem = err.Error()
		return m, nil
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		m.problem = fmt.Sprintf("'%s' is a directory", filepath.Base(abs))
		return m, nil
	case err == nil && m.pending != abs:
		m.pending = abs
		m.problem = fmt.Sprintf("'%s' already exists. Press enter again to replace it.", filepath.Base(abs))
		return m, nil
	}

	m.path, m.ok = abs, true
	return m, tea.Quit
}

func (m saveModel) View() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Save As"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.problem != "" {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Width(modalWidth - 6).Render(m.problem))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter save • esc cancel"))

	return placeModal(m.theme, m.width, m.height, b.String())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// truncateLeft shortens s to width runes, keeping the end.
func truncateLeft(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return "…" + string(r[len(r)-width+1:])
}
