package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a color palette for the editor.
type Theme struct {
	Name string

	Background string // behind modals and overlays
	Bar        string // tab bar and status bar
	TabActive  string
	Selection  string
	OnSelect   string // text drawn on Selection
	Border     string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Bar lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Tab           lipgloss.Style
	ActiveTab     lipgloss.Style
	StatusBar     lipgloss.Style
	Pane          lipgloss.Style
	Modal         lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Selected      lipgloss.Style
	Key           lipgloss.Style
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	onBar := func(c string) lipgloss.Style {
		return fg(c).Background(lipgloss.Color(t.Bar)).Padding(0, 1)
	}
	selected := fg(t.OnSelect).Background(lipgloss.Color(t.Selection))

	return Styles{
		Bar: fg(t.Text).Background(lipgloss.Color(t.Bar)),

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Tab:       onBar(t.Muted),
		ActiveTab: fg(t.Text).Background(lipgloss.Color(t.TabActive)).Bold(true).Padding(0, 1),
		StatusBar: onBar(t.Muted),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(1, 2),

		Button:        fg(t.Muted).Padding(0, 2),
		ButtonFocused: selected.Bold(true).Padding(0, 2),
		Selected:      selected,
		Key:           fg(t.Warning),
	}
}

// LevelStyle returns the style for a log level name.
func (s Styles) LevelStyle(level string) lipgloss.Style {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return s.DangerText
	case "WARN":
		return s.WarningText
	case "DEBUG":
		return s.InfoText
	case "INFO":
		return s.SuccessText
	default:
		return s.Text
	}
}

var themeList = []Theme{
	{
		// https://github.com/EdenEast/nightfox.nvim
		Name:       "Nightfox",
		Background: "#131a24",
		Bar:        "#212e3f",
		TabActive:  "#29394f",
		Selection:  "#2b3b51",
		OnSelect:   "#cdcecf",
		Border:     "#39506d",
		Text:       "#cdcecf",
		Muted:      "#738091",
		Faint:      "#71839b",
		Accent:     "#719cd6",
		Success:    "#81b29a",
		Warning:    "#dbc074",
		Danger:     "#c94f6d",
		Info:       "#63cdcf",
	},
	{
		// Light variant of the same family.
		Name:       "Dayfox",
		Background: "#e4dcd4",
		Bar:        "#dbd1dd",
		TabActive:  "#f6f2ee",
		Selection:  "#e7d2be",
		OnSelect:   "#3d2b5a",
		Border:     "#aab0ad",
		Text:       "#3d2b5a",
		Muted:      "#837a72",
		Faint:      "#a4a0a8",
		Accent:     "#2848a9",
		Success:    "#396847",
		Warning:    "#ac5402",
		Danger:     "#a5222f",
		Info:       "#287980",
	},
	{
		// Tailwind slate and sky.
		Name:       "Slate",
		Background: "#020617",
		Bar:        "#1e293b",
		TabActive:  "#334155",
		Selection:  "#0284c7",
		OnSelect:   "#f8fafc",
		Border:     "#475569",
		Text:       "#f1f5f9",
		Muted:      "#94a3b8",
		Faint:      "#64748b",
		Accent:     "#38bdf8",
		Success:    "#22c55e",
		Warning:    "#f59e0b",
		Danger:     "#ef4444",
		Info:       "#06b6d4",
	},
}

// GetTheme returns the named theme, or the first one when unknown.
func GetTheme(name string) Theme {
	for _, t := range themeList {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return themeList[0]
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current string) string {
	for i, t := range themeList {
		if t.Name == current {
			return themeList[(i+1)%len(themeList)].Name
		}
	}
	return themeList[0].Name
}

// ThemeNames lists the available themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themeList))
	for i, t := range themeList {
		names[i] = t.Name
	}
	return names
}
