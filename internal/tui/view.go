package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/reactions"
)

func (m model) View() string {
	var body string
	switch m.screen {
	case screenDetail:
		body = m.viewDetail()
	case screenSearch:
		body = m.viewSearch()
	case screenCompare:
		body = m.viewCompare()
	case screenQuiz:
		body = m.viewQuiz()
	default:
		body = m.viewTable()
	}
	if m.status != "" {
		body += "\n  " + m.st.accent.Render(m.status) + "\n"
	}
	return body
}

func (m model) header(title string) string {
	return "\n  " + m.st.title.Render(title) + "\n" + m.st.faint.Render("  "+strings.Repeat("─", 72)) + "\n"
}

// cellColor is the background for element e under the current colour mode.
func (m model) cellColor(e chem.Element) string {
	if m.colorBy < 0 {
		return e.Category.Color()
	}
	return m.cat.GradientFor(chem.Properties[m.colorBy], e)
}

func (m model) viewTable() string {
	var b strings.Builder
	b.WriteString(m.header("p e r i o d i x"))

	for r, row := range m.grid {
		b.WriteString("  ")
		for c, n := range row {
			if n == 0 {
				b.WriteString("    ")
				continue
			}
			e, err := m.cat.ByNumber(n)
			if err != nil {
				b.WriteString("    ")
				continue
			}
			cell := fmt.Sprintf(" %-2s ", e.Symbol)
			style := cellStyle(m.cellColor(e))
			if r == m.row && c == m.col {
				style = style.Reverse(true).Bold(true)
			}
			if m.tray.Contains(n) {
				cell = fmt.Sprintf(" %-2s*", e.Symbol)
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}

	if e, err := m.selected(); err == nil {
		b.WriteString(fmt.Sprintf("\n  %s %s  %s  %s  %s\n",
			m.st.muted.Render(fmt.Sprint(e.Number)),
			m.st.selected.Render(e.Symbol),
			m.st.text.Render(e.Name),
			m.st.muted.Render(e.Category.Label()),
			m.st.muted.Render(fmt.Sprintf("%g u", e.Mass))))
	}
	b.WriteString("  " + m.legend() + "\n")
	b.WriteString("\n" + m.st.hint.Render("  ←↑↓→ move  enter open  / search  c colour  x compare  v tray  z quiz  t theme  q quit") + "\n")
	return b.String()
}

func (m model) legend() string {
	if m.colorBy < 0 {
		var parts []string
		for _, c := range chem.Categories {
			parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color())).Render("■")+" "+m.st.muted.Render(c.Label()))
		}
		return lipgloss.NewStyle().Width(76).Render(strings.Join(parts, "  "))
	}

	p := chem.Properties[m.colorBy]
	lo, hi, ok := m.cat.PropertyRange(p)
	if !ok {
		return m.st.muted.Render(p.Label())
	}
	var ramp strings.Builder
	const steps = 20
	for i := 0; i <= steps; i++ {
		v := lo + (hi-lo)*float64(i)/steps
		ramp.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(chem.Gradient(v, lo, hi))).Render("█"))
	}
	return fmt.Sprintf("%s  %s %s %s  %s",
		m.st.text.Render(p.Label()),
		m.st.muted.Render(fmt.Sprintf("%g", lo)),
		ramp.String(),
		m.st.muted.Render(fmt.Sprintf("%g %s", hi, p.Unit())),
		m.st.faint.Render("grey: unknown"))
}

func (m model) tabs() string {
	var parts []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			parts = append(parts, m.st.tabOn.Render(label))
		} else {
			parts = append(parts, m.st.tabOff.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m model) viewDetail() string {
	e, err := m.selected()
	if err != nil {
		return m.header("periodix") + "  " + m.st.bad.Render(err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.header(fmt.Sprintf("%d  %s  %s", e.Number, e.Symbol, e.Name)))
	b.WriteString("  " + m.tabs() + "\n\n")

	switch m.tab {
	case tabProperties:
		b.WriteString(m.viewProperties(e))
		b.WriteString("\n" + m.st.hint.Render("  tab switch  n/p next/prev  x compare  esc back") + "\n")
		return b.String()
	case tabHybridization:
		b.WriteString(m.viewHybridization(e))
		b.WriteString("\n" + m.st.hint.Render("  tab switch  n/p next/prev  x compare  esc back") + "\n")
		return b.String()
	case tabReactions:
		b.WriteString(m.viewReactions(e))
		b.WriteString("\n" + m.st.hint.Render("  tab switch  ↑↓ scroll  n/p next/prev  x compare  esc back") + "\n")
		return b.String()
	}

	for _, line := range strings.Split(strings.TrimRight(m.surface.Frame(), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	if mdl := m.sess.Model(); mdl != nil {
		b.WriteString("  " + m.st.selected.Render(mdl.Title) + "  " + m.st.muted.Render(mdl.Description) + "\n")
	}
	rot := "off"
	if m.sess.Rotating() {
		rot = "on"
	}
	b.WriteString(m.st.hint.Render(fmt.Sprintf("  tab switch  ←↑↓→ orbit  ± zoom  0 reset  r rotate (%s)  n/p next/prev  esc back", rot)) + "\n")
	return b.String()
}

func (m model) viewProperties(e chem.Element) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s %s\n", m.st.muted.Render(fmt.Sprintf("%-22s", label)), m.st.text.Render(value)))
	}
	row("Category", e.Category.Label())
	row("Atomic Mass", fmt.Sprintf("%g u", e.Mass))
	row("Electron Configuration", e.Config)
	shells := make([]string, len(e.Shells))
	for i, n := range e.Shells {
		shells[i] = fmt.Sprint(n)
	}
	row("Shells", strings.Join(shells, ", "))
	b.WriteString("\n")

	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Category.Color()))
	for _, p := range chem.Properties {
		frac, ok := p.Fraction(e)
		if !ok {
			frac = 0
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			m.st.muted.Render(fmt.Sprintf("%-22s", p.Label())),
			bar(frac, 30, fill, m.st.faint),
			m.st.text.Render(p.Format(e))))
	}

	p := chem.Electronegativity
	if m.colorBy >= 0 {
		p = chem.Properties[m.colorBy]
	}
	graph := asciigraph.Plot(m.cat.Series(p),
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(p.Label()+" by atomic number"))
	b.WriteString("\n")
	for _, line := range strings.Split(graph, "\n") {
		b.WriteString("  " + m.st.selected.Render(line) + "\n")
	}
	return b.String()
}

func (m model) viewHybridization(e chem.Element) string {
	var b strings.Builder
	d, ok := chem.Diagram(e)
	if ok {
		b.WriteString("  " + m.st.title.Render(d.Kind+" Hybridization") + "\n\n")
		box := func(label string, st lipgloss.Style) string {
			return m.st.panel.Render(st.Render(label))
		}
		var orbitals, hybrids []string
		for _, o := range d.Orbitals {
			orbitals = append(orbitals, box(o, m.st.text))
		}
		for _, h := range d.Hybrids {
			hybrids = append(hybrids, box(h, m.st.selected))
		}
		left := lipgloss.JoinVertical(lipgloss.Center,
			m.st.muted.Render("Original Orbitals"),
			lipgloss.JoinHorizontal(lipgloss.Top, orbitals...))
		right := lipgloss.JoinVertical(lipgloss.Center,
			m.st.muted.Render("Hybrid Orbitals"),
			lipgloss.JoinHorizontal(lipgloss.Top, hybrids...))
		arrow := lipgloss.NewStyle().Padding(2, 2).Render(m.st.accent.Render("→"))
		diagram := lipgloss.JoinHorizontal(lipgloss.Center, left, arrow, right)
		for _, line := range strings.Split(diagram, "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("  " + m.st.text.Render(chem.HybridNote(e)) + "\n")
	return b.String()
}

// equation styles each token of a reaction equation.
func (m model) equation(eq string) string {
	var b strings.Builder
	for _, tok := range reactions.Tokenize(eq) {
		switch tok.Kind {
		case reactions.State:
			b.WriteString(m.st.faint.Render(tok.Text))
		case reactions.Arrow:
			b.WriteString(m.st.accent.Render(tok.Text))
		case reactions.Plus:
			b.WriteString(m.st.selected.Render(tok.Text))
		default:
			b.WriteString(m.st.text.Render(tok.Text))
		}
	}
	return b.String()
}

func (m model) viewReactions(e chem.Element) string {
	rs := m.rx.For(e.Number)
	if len(rs) == 0 {
		return "  " + m.st.muted.Render(reactions.EmptyMessage(e.Name)) + "\n"
	}

	var lines []string
	for i, r := range rs {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			m.st.title.Render(r.Name)+"  "+m.st.muted.Render(r.Type),
			"  "+m.equation(r.Equation),
			"  "+m.st.text.Render(r.Description),
			"  "+m.st.muted.Render("Conditions:"))
		for _, c := range r.Conditions {
			lines = append(lines, "    • "+m.st.text.Render(c))
		}
		lines = append(lines, "  "+m.st.muted.Render("Applications: ")+m.st.text.Render(r.Applications))
	}

	_, h := m.viewport()
	start := min(m.scroll, max(len(lines)-1, 0))
	end := min(start+h, len(lines))
	var b strings.Builder
	for _, line := range lines[start:end] {
		b.WriteString("  " + line + "\n")
	}
	if end < len(lines) {
		b.WriteString("  " + m.st.faint.Render(fmt.Sprintf("… %d more lines", len(lines)-end)) + "\n")
	}
	return b.String()
}

func (m model) viewSearch() string {
	var b strings.Builder
	b.WriteString(m.header("search"))
	b.WriteString("  / " + m.st.text.Render(m.query) + m.st.accent.Render("▋") + "\n\n")
	if m.query != "" && len(m.results) == 0 {
		b.WriteString("  " + m.st.muted.Render("no matches") + "\n")
	}
	for i, e := range m.results {
		line := fmt.Sprintf("%3d  %-2s  %s", e.Number, e.Symbol, e.Name)
		if i == m.pick {
			b.WriteString("  " + m.st.accent.Render("▸ ") + m.st.selected.Render(line) + "\n")
		} else {
			b.WriteString("    " + m.st.muted.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + m.st.hint.Render("  type name, symbol or number  ↑↓ pick  enter open  esc back") + "\n")
	return b.String()
}

func (m model) viewCompare() string {
	var b strings.Builder
	b.WriteString(m.header(fmt.Sprintf("compare  %d/4", m.tray.Len())))
	table := m.tray.Render(func(e chem.Element) string { return e.Category.Color() })
	for _, line := range strings.Split(table, "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n" + m.st.hint.Render("  d clear  e export xlsx  esc back") + "\n")
	return b.String()
}

func (m model) viewQuiz() string {
	var b strings.Builder
	s := m.quizSettings
	b.WriteString(m.header(fmt.Sprintf("quiz  %s  %s", s.Difficulty, s.Topic)))

	if m.quiz == nil {
		return b.String()
	}
	if r := m.lastAnswer; r != nil {
		switch {
		case r.Correct:
			b.WriteString("  " + m.st.good.Render("correct!") + "\n\n")
		case r.Choice == "":
			b.WriteString("  " + m.st.muted.Render("skipped, the answer was "+r.Question.Answer) + "\n\n")
		default:
			b.WriteString("  " + m.st.bad.Render("wrong, the answer was "+r.Question.Answer) + "\n\n")
		}
	}

	if m.quiz.Done() {
		correct, total := m.quiz.Score()
		b.WriteString(fmt.Sprintf("  %s %s\n", m.st.title.Render(fmt.Sprintf("%d/%d", correct, total)), m.st.muted.Render(fmt.Sprintf("(%d%%)", m.quiz.Percent()))))
		b.WriteString("  " + m.st.text.Render(m.quiz.Feedback()) + "\n")
		b.WriteString("\n" + m.st.hint.Render("  n new quiz  d difficulty  c category  esc back") + "\n")
		return b.String()
	}

	q, _ := m.quiz.Current()
	b.WriteString(fmt.Sprintf("  %s %s\n\n", m.st.muted.Render(fmt.Sprintf("Q%d/%d", m.quiz.Index()+1, m.quiz.Len())), m.st.text.Render(q.Text)))
	for i, o := range q.Options {
		b.WriteString(fmt.Sprintf("    %s %s\n", m.st.accent.Render(fmt.Sprintf("%d", i+1)), m.st.text.Render(o)))
	}
	b.WriteString("\n" + m.st.hint.Render("  1-4 answer  s skip  esc back") + "\n")
	return b.String()
}
