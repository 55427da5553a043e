// Package compare keeps a small side-by-side selection of elements.
package compare

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/periodix/internal/chem"
)

// MaxElements is the tray capacity.
const MaxElements = 4

var ErrTrayFull = errors.New("compare: tray holds at most 4 elements")

type Tray struct {
	elements []chem.Element
}

func NewTray() *Tray { return &Tray{} }

// Add appends e. Adding an element that is already present is a no-op.
func (t *Tray) Add(e chem.Element) error {
	if t.Contains(e.Number) {
		return nil
	}
	if len(t.elements) >= MaxElements {
		return ErrTrayFull
	}
	t.elements = append(t.elements, e)
	return nil
}

// Remove drops the element with the given atomic number and reports whether
// it was present.
func (t *Tray) Remove(number int) bool {
	for i, e := range t.elements {
		if e.Number == number {
			t.elements = append(t.elements[:i], t.elements[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle adds e if absent and removes it otherwise.
func (t *Tray) Toggle(e chem.Element) error {
	if t.Remove(e.Number) {
		return nil
	}
	return t.Add(e)
}

func (t *Tray) Contains(number int) bool {
	for _, e := range t.elements {
		if e.Number == number {
			return true
		}
	}
	return false
}

func (t *Tray) Clear()   { t.elements = nil }
func (t *Tray) Len() int { return len(t.elements) }

func (t *Tray) Elements() []chem.Element {
	out := make([]chem.Element, len(t.elements))
	copy(out, t.elements)
	return out
}

type field struct {
	label string
	text  func(chem.Element) string
	value func(chem.Element) any
}

func fields() []field {
	fs := []field{
		{"Atomic Number", func(e chem.Element) string { return strconv.Itoa(e.Number) }, func(e chem.Element) any { return e.Number }},
		{"Atomic Mass", func(e chem.Element) string { return strconv.FormatFloat(e.Mass, 'f', -1, 64) + " u" }, func(e chem.Element) any { return e.Mass }},
		{"Category", func(e chem.Element) string { return e.Category.Label() }, nil},
		{"Electron Configuration", func(e chem.Element) string { return e.Config }, nil},
	}
	for _, p := range chem.Properties {
		p := p
		fs = append(fs, field{
			label: p.Label(),
			text:  p.Format,
			value: func(e chem.Element) any {
				if v, ok := p.Value(e); ok {
					return v
				}
				return "N/A"
			},
		})
	}
	return fs
}

// Header is the first row: a blank corner followed by each element symbol.
func (t *Tray) Header() []string {
	h := []string{"Property"}
	for _, e := range t.elements {
		h = append(h, e.Symbol)
	}
	return h
}

// Rows returns one row per compared property, with formatted values.
func (t *Tray) Rows() [][]string {
	var rows [][]string
	for _, f := range fields() {
		row := []string{f.label}
		for _, e := range t.elements {
			row = append(row, f.text(e))
		}
		rows = append(rows, row)
	}
	return rows
}

// Render draws the tray as a bordered table. Symbol headers take the
// category colour from colorOf when it is set.
func (t *Tray) Render(colorOf func(chem.Element) string) string {
	if len(t.elements) == 0 {
		return "No elements selected for comparison."
	}

	border := lipgloss.Color("#444444")
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(border)).
		Headers(t.Header()...).
		Rows(t.Rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				s = s.Bold(true)
				if col > 0 && colorOf != nil {
					s = s.Foreground(lipgloss.Color(colorOf(t.elements[col-1])))
				}
				return s
			}
			if col == 0 {
				return s.Foreground(lipgloss.Color("#888888"))
			}
			return s
		})
	return tbl.Render()
}
