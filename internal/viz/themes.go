package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the drive view.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Forward lipgloss.Color
	Reverse lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Forward: lipgloss.Color("#00ff00"),
		Reverse: lipgloss.Color("#ff0000"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#00a8cc"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Forward: lipgloss.Color("#00ff88"),
		Reverse: lipgloss.Color("#ff4444"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Forward: lipgloss.Color("#88ff88"),
		Reverse: lipgloss.Color("#ffff00"),
		Warning: lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemeMinimal, ThemeOcean, ThemeRetro}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Forward lipgloss.Style
	Reverse lipgloss.Style
	Warning lipgloss.Style
	Help    lipgloss.Style
	Panel   lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(8),
		Value:   lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Forward: lipgloss.NewStyle().Foreground(t.Forward),
		Reverse: lipgloss.NewStyle().Foreground(t.Reverse),
		Warning: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}
