package tui

import (
	"io"
	"log/slog"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/periodix/internal/build"
	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/config"
	"github.com/san-kum/periodix/internal/modeldata"
	"github.com/san-kum/periodix/internal/render"
	"github.com/san-kum/periodix/internal/session"
)

func testModel(t *testing.T) model {
	t.Helper()
	tables, err := modeldata.Load()
	if err != nil {
		t.Fatal(err)
	}
	res, err := modeldata.NewResolver(tables, modeldata.DefaultCacheSize)
	if err != nil {
		t.Fatal(err)
	}
	surface := render.NewTerminal(0, 0)
	surface.Getenv = func(string) string { return "xterm-256color" }
	surface.Color = false

	m := newModel(Options{
		Catalog:    chem.MustLoad(),
		Builder:    build.New(res, build.DefaultOptions()),
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Surface:    surface,
		Rand:       rand.New(rand.NewSource(1)),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(model)
}

func press(m model, keys ...string) (model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m, cmd = next.(model), c
	}
	return m, cmd
}

func TestDetail_TextTabs(t *testing.T) {
	m := testModel(t)
	m, _ = press(m, "enter", "6")
	if m.tab != tabReactions || m.sess.State() != session.Disposed {
		t.Fatalf("reactions tab: tab %d state %s", m.tab, m.sess.State())
	}
	view := m.View()
	if !strings.Contains(view, "Combustion of Hydrogen") || !strings.Contains(view, "→") {
		t.Error("hydrogen reactions missing")
	}
	m, _ = press(m, "down", "down")
	if m.scroll != 2 {
		t.Errorf("scroll = %d, want 2", m.scroll)
	}
	if strings.Contains(m.View(), "Combustion of Hydrogen") {
		t.Error("scrolled view should drop the first card title")
	}

	tests := []struct {
		number int
		tab    string
		want   string
	}{
		{15, "6", "No specific reactions available for Phosphorus."},
		{1, "5", "Hydrogen typically doesn't form hybrid orbitals."},
		{6, "5", "sp Hybridization"},
		{6, "5", "Hybrid Orbitals"},
		{78, "5", "Platinum has complex hybridization patterns"},
	}
	for _, tt := range tests {
		m.jumpTo(tt.number)
		m, _ = press(m, tt.tab)
		if m.scroll != 0 {
			t.Errorf("switching tab should reset scroll, got %d", m.scroll)
		}
		if !strings.Contains(m.View(), tt.want) {
			t.Errorf("element %d tab %s: view missing %q", tt.number, tt.tab, tt.want)
		}
	}
}

func symbol(t *testing.T, m model) string {
	t.Helper()
	e, err := m.selected()
	if err != nil {
		t.Fatal(err)
	}
	return e.Symbol
}

func TestNavigation_SkipsGaps(t *testing.T) {
	m := testModel(t)
	if got := symbol(t, m); got != "H" {
		t.Fatalf("start at %s", got)
	}
	m, _ = press(m, "right")
	if got := symbol(t, m); got != "He" {
		t.Errorf("right from H = %s, want He", got)
	}
	m, _ = press(m, "down")
	if got := symbol(t, m); got != "Ne" {
		t.Errorf("down from He = %s, want Ne", got)
	}
	m, _ = press(m, "left")
	if got := symbol(t, m); got != "F" {
		t.Errorf("left from Ne = %s, want F", got)
	}
	m, _ = press(m, "up")
	if got := symbol(t, m); got != "F" {
		t.Errorf("up from F should stay, got %s", got)
	}
}

func TestDetail_ShowsAndDisposes(t *testing.T) {
	m := testModel(t)
	m, cmd := press(m, "enter")
	if m.screen != screenDetail || cmd == nil {
		t.Fatal("enter should open the detail view with a frame tick")
	}
	if m.sess.State() != session.Displaying {
		t.Fatalf("session state = %s", m.sess.State())
	}
	if !strings.ContainsRune(m.surface.PlainFrame(), '⣿') {
		t.Error("atom view drew nothing")
	}
	if !strings.Contains(m.View(), "Hydrogen") {
		t.Error("detail header missing")
	}

	m, _ = press(m, "2")
	if _, mode, _ := m.sess.Current(); mode != build.ModeMolecule {
		t.Errorf("mode = %s, want molecule", mode)
	}

	m, _ = press(m, "4")
	if m.sess.State() != session.Disposed {
		t.Errorf("properties tab should dispose the scene, state %s", m.sess.State())
	}
	if !strings.Contains(m.View(), "Electronegativity") {
		t.Error("properties tab missing values")
	}

	m, _ = press(m, "1", "esc")
	if m.screen != screenTable || m.sess.State() != session.Disposed {
		t.Errorf("esc should return to the table and dispose, state %s", m.sess.State())
	}
}

func TestFrames_StaleTokenStopsChain(t *testing.T) {
	m := testModel(t)
	m, _ = press(m, "enter")
	old := m.token

	next, cmd := m.Update(frameMsg{token: old})
	if cmd == nil {
		t.Fatal("current token should schedule another frame")
	}
	m = next.(model)

	m, _ = press(m, "2")
	if _, cmd := m.Update(frameMsg{token: old}); cmd != nil {
		t.Error("stale token should end its chain")
	}
}

func TestThemeCyclePersists(t *testing.T) {
	m := testModel(t)
	first := m.theme.Name
	m, _ = press(m, "t")
	if m.theme.Name == first {
		t.Fatal("theme did not change")
	}
	cfg, err := config.Load(m.cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != m.theme.Name {
		t.Errorf("saved theme %s, want %s", cfg.Theme, m.theme.Name)
	}
}

func TestColourModeCycles(t *testing.T) {
	m := testModel(t)
	for i := 0; i < len(chem.Properties); i++ {
		m, _ = press(m, "c")
	}
	if m.colorBy != len(chem.Properties)-1 {
		t.Fatalf("colorBy = %d", m.colorBy)
	}
	if !strings.Contains(m.View(), chem.Properties[m.colorBy].Label()) {
		t.Error("gradient legend missing")
	}
	m, _ = press(m, "c")
	if m.colorBy != -1 {
		t.Errorf("should wrap back to category colours, got %d", m.colorBy)
	}
}

func TestSearchOpensElement(t *testing.T) {
	m := testModel(t)
	m, _ = press(m, "/", "i", "r", "o", "n")
	if len(m.results) == 0 || m.results[0].Symbol != "Fe" {
		t.Fatalf("results = %v", m.results)
	}
	m, _ = press(m, "enter")
	if m.screen != screenDetail || symbol(t, m) != "Fe" {
		t.Errorf("enter should open Fe, got %s", symbol(t, m))
	}
}

func TestCompareTray(t *testing.T) {
	m := testModel(t)
	m, _ = press(m, "x", "right", "x")
	if m.tray.Len() != 2 {
		t.Fatalf("tray len = %d", m.tray.Len())
	}
	m, _ = press(m, "v")
	if !strings.Contains(m.View(), "He") {
		t.Error("tray view missing helium")
	}
	m, _ = press(m, "d")
	if m.tray.Len() != 0 {
		t.Error("d should clear the tray")
	}
}

func TestQuizFlow(t *testing.T) {
	m := testModel(t)
	m, _ = press(m, "z")
	if m.screen != screenQuiz || m.quiz == nil {
		t.Fatal("z should start a quiz")
	}
	for !m.quiz.Done() {
		m, _ = press(m, "1")
	}
	_, total := m.quiz.Score()
	if total != 10 {
		t.Errorf("total = %d", total)
	}
	if !strings.Contains(m.View(), m.quiz.Feedback()) {
		t.Error("results screen missing feedback")
	}
	m, _ = press(m, "d")
	if m.quizSettings.Difficulty != "hard" || m.quiz.Done() {
		t.Error("d should raise difficulty and restart")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back")
	}
	if NextTheme(Themes[len(Themes)-1].Name).Name != Themes[0].Name {
		t.Error("NextTheme should wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length")
	}
}
