package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type styles struct {
	title    lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	faint    lipgloss.Style
	accent   lipgloss.Style
	good     lipgloss.Style
	bad      lipgloss.Style
	hint     lipgloss.Style
	tabOn    lipgloss.Style
	tabOff   lipgloss.Style
	panel    lipgloss.Style
	selected lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		text:     lipgloss.NewStyle().Foreground(t.Text),
		muted:    lipgloss.NewStyle().Foreground(t.Muted),
		faint:    lipgloss.NewStyle().Foreground(t.Faint),
		accent:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		good:     lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		bad:      lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		hint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		tabOn:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Underline(true).Padding(0, 1),
		tabOff:   lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Faint).Padding(0, 1),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
	}
}

// cellStyle paints an element cell on bg with legible text.
func cellStyle(bg string) lipgloss.Style {
	fg := "#ffffff"
	if c, err := colorful.Hex(bg); err == nil {
		if l, _, _ := c.Lab(); l > 0.6 {
			fg = "#000000"
		}
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(fg))
}

// bar renders a fill bar for a fraction in [0, 1].
func bar(frac float64, width int, fill, empty lipgloss.Style) string {
	n := int(frac*float64(width) + 0.5)
	if n > width {
		n = width
	}
	if n < 0 {
		n = 0
	}
	return fill.Render(strings.Repeat("█", n)) + empty.Render(strings.Repeat("░", width-n))
}
