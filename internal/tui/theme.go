package tui

import "github.com/charmbracelet/lipgloss"

// Theme colours the chrome around the table. Element cells keep their
// category or gradient colours under every theme.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Faint     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var Themes = []Theme{
	{
		Name:      "cyberpunk",
		Primary:   "#ff00ff",
		Secondary: "#00ffff",
		Accent:    "#ffff00",
		Text:      "#ffffff",
		Muted:     "#888888",
		Faint:     "#444444",
		Success:   "#00ff00",
		Warning:   "#ff8800",
		Error:     "#ff0000",
	},
	{
		Name:      "retro",
		Primary:   "#00ff00",
		Secondary: "#00cc00",
		Accent:    "#88ff88",
		Text:      "#00ff00",
		Muted:     "#008800",
		Faint:     "#005500",
		Success:   "#88ff88",
		Warning:   "#ffff00",
		Error:     "#ff0000",
	},
	{
		Name:      "minimal",
		Primary:   "#ffffff",
		Secondary: "#cccccc",
		Accent:    "#0088ff",
		Text:      "#ffffff",
		Muted:     "#888888",
		Faint:     "#444444",
		Success:   "#00ff00",
		Warning:   "#ffaa00",
		Error:     "#ff0000",
	},
	{
		Name:      "ocean",
		Primary:   "#0077be",
		Secondary: "#00a8cc",
		Accent:    "#ffd700",
		Text:      "#e0f0ff",
		Muted:     "#4488aa",
		Faint:     "#224455",
		Success:   "#00ff88",
		Warning:   "#ffcc00",
		Error:     "#ff4444",
	},
	{
		Name:      "sunset",
		Primary:   "#ff6b6b",
		Secondary: "#feca57",
		Accent:    "#ff9ff3",
		Text:      "#fff5f5",
		Muted:     "#8b6b8c",
		Faint:     "#4d3b4e",
		Success:   "#5fd068",
		Warning:   "#ffc048",
		Error:     "#ff4757",
	},
}

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme is the theme after name in cycle order.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
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
