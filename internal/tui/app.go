package tui

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/periodix/internal/build"
	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/compare"
	"github.com/san-kum/periodix/internal/config"
	"github.com/san-kum/periodix/internal/quiz"
	"github.com/san-kum/periodix/internal/reactions"
	"github.com/san-kum/periodix/internal/render"
	"github.com/san-kum/periodix/internal/session"
)

type screen int

const (
	screenTable screen = iota
	screenDetail
	screenSearch
	screenCompare
	screenQuiz
)

type tab int

const (
	tabAtom tab = iota
	tabMolecule
	tabCrystal
	tabProperties
	tabHybridization
	tabReactions
)

var tabNames = []string{"atom", "molecule", "crystal", "properties", "hybridization", "reactions"}

// mode is the scene shown on the tab; the text tabs have none.
func (t tab) mode() (build.Mode, bool) {
	switch t {
	case tabAtom:
		return build.ModeAtom, true
	case tabMolecule:
		return build.ModeMolecule, true
	case tabCrystal:
		return build.ModeCrystal, true
	}
	return "", false
}

// Options wires the explorer to its collaborators. Surface is created when
// nil; ConfigPath empty disables persisting the theme.
type Options struct {
	Catalog    *chem.Catalog
	Reactions  *reactions.Catalog
	Builder    *build.Builder
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Metrics    *session.Metrics
	Surface    *render.Terminal
	Rand       *rand.Rand
}

type model struct {
	cat     *chem.Catalog
	rx      *reactions.Catalog
	cfg     *config.Config
	cfgPath string
	log     *slog.Logger

	theme Theme
	st    styles

	screen  screen
	grid    [][]int
	row     int
	col     int
	colorBy int // -1 for category, otherwise an index into chem.Properties

	tab       tab
	scroll    int
	surface   *render.Terminal
	sess      *session.Session
	token     uint64
	lastFrame time.Time

	tray *compare.Tray

	rng          *rand.Rand
	quizSettings quiz.Settings
	quiz         *quiz.Quiz
	lastAnswer   *quiz.Result

	query   string
	results []chem.Element
	pick    int

	status string
	width  int
	height int
}

func newModel(o Options) model {
	cfg := o.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := o.Logger
	if log == nil {
		log = slog.Default()
	}
	surface := o.Surface
	if surface == nil {
		surface = render.NewTerminal(0, 0)
	}
	rng := o.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rx := o.Reactions
	if rx == nil {
		rx = reactions.MustLoad()
	}
	theme := GetTheme(cfg.Theme)

	m := model{
		cat:     o.Catalog,
		rx:      rx,
		cfg:     cfg,
		cfgPath: o.ConfigPath,
		log:     log.With(slog.String("component", "tui")),
		theme:   theme,
		st:      newStyles(theme),
		grid:    o.Catalog.Grid(),
		colorBy: -1,
		surface: surface,
		sess: session.New(session.Config{
			Builder:       o.Builder,
			Surface:       surface,
			Logger:        log,
			Metrics:       o.Metrics,
			Rotate:        cfg.Rotate,
			RotationSpeed: cfg.RotationSpeed,
		}),
		tray:         compare.NewTray(),
		rng:          rng,
		quizSettings: quiz.Settings{Difficulty: quiz.Medium, Topic: quiz.All, Count: quiz.DefaultCount},
		width:        80,
		height:       24,
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

type frameMsg struct {
	token uint64
	at    time.Time
}

func (m model) frame(token uint64) tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg { return frameMsg{token: token, at: t} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.showing3D() {
			w, h := m.viewport()
			if err := m.sess.OnViewportResize(w, h); err != nil {
				m.status = err.Error()
			}
		}
		return m, nil
	case frameMsg:
		if msg.token != m.token {
			return m, nil
		}
		dt := m.cfg.FrameInterval().Seconds()
		if !m.lastFrame.IsZero() {
			dt = msg.at.Sub(m.lastFrame).Seconds()
		}
		m.lastFrame = msg.at
		if !m.sess.Frame(msg.token, dt) {
			return m, nil
		}
		return m, m.frame(msg.token)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.sess.Dispose()
		return m, tea.Quit
	}
	switch m.screen {
	case screenTable:
		return m.tableKey(msg)
	case screenDetail:
		return m.detailKey(msg)
	case screenSearch:
		return m.searchKey(msg)
	case screenCompare:
		return m.compareKey(msg)
	case screenQuiz:
		return m.quizKey(msg)
	}
	return m, nil
}

func (m model) tableKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "esc":
		m.sess.Dispose()
		return m, tea.Quit
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h":
		m.move(0, -1)
	case "right", "l":
		m.move(0, 1)
	case "enter", " ":
		m.screen = screenDetail
		m.tab = tabAtom
		return m.show()
	case "c":
		m.colorBy++
		if m.colorBy >= len(chem.Properties) {
			m.colorBy = -1
		}
	case "t":
		m.cycleTheme()
	case "x":
		m.toggleCompare()
	case "v":
		m.screen = screenCompare
	case "/":
		m.screen = screenSearch
		m.query, m.results, m.pick = "", nil, 0
	case "z":
		m.startQuiz()
		m.screen = screenQuiz
	}
	return m, nil
}

func (m model) detailKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "esc":
		m.sess.Dispose()
		m.token = m.sess.Token()
		m.screen = screenTable
		return m, nil
	case "tab":
		return m.switchTab((m.tab + 1) % tab(len(tabNames)))
	case "shift+tab":
		return m.switchTab((m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames)))
	case "1", "2", "3", "4", "5", "6":
		return m.switchTab(tab(msg.String()[0] - '1'))
	case "n":
		m.step(1)
		return m.switchTab(m.tab)
	case "p":
		m.step(-1)
		return m.switchTab(m.tab)
	case "r":
		if m.sess.ToggleRotation() {
			m.status = "rotation on"
		} else {
			m.status = "rotation off"
		}
	case "0":
		m.sess.ResetCamera()
	case "left", "h":
		m.sess.OrbitCamera(-0.2, 0)
	case "right", "l":
		m.sess.OrbitCamera(0.2, 0)
	case "up", "k":
		if m.tab == tabReactions {
			m.scroll = max(m.scroll-1, 0)
			break
		}
		m.sess.OrbitCamera(0, -0.2)
	case "down", "j":
		if m.tab == tabReactions {
			m.scroll++
			break
		}
		m.sess.OrbitCamera(0, 0.2)
	case "+", "=":
		m.sess.Zoom(1)
	case "-", "_":
		m.sess.Zoom(-1)
	case "x":
		m.toggleCompare()
	}
	return m, nil
}

func (m model) searchKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenTable
		return m, nil
	case tea.KeyEnter:
		if len(m.results) == 0 {
			return m, nil
		}
		m.jumpTo(m.results[m.pick].Number)
		m.screen = screenDetail
		m.tab = tabAtom
		return m.show()
	case tea.KeyUp:
		if m.pick > 0 {
			m.pick--
		}
		return m, nil
	case tea.KeyDown:
		if m.pick < len(m.results)-1 {
			m.pick++
		}
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.query += string(msg.Runes)
	case tea.KeySpace:
		m.query += " "
	default:
		return m, nil
	}
	m.results = m.cat.Search(m.query, chem.DefaultSearchLimit)
	m.pick = 0
	return m, nil
}

func (m model) compareKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "esc":
		m.screen = screenTable
	case "d":
		m.tray.Clear()
	case "e":
		const path = "periodix-compare.xlsx"
		if err := m.tray.WriteXLSX(path); err != nil {
			m.status = err.Error()
		} else {
			m.status = "saved " + path
		}
	}
	return m, nil
}

func (m model) quizKey(msg tea.KeyMsg) (model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc":
		m.screen = screenTable
		m.quiz, m.lastAnswer = nil, nil
		return m, nil
	}

	if m.quiz.Done() {
		switch key {
		case "n", "enter":
			m.startQuiz()
		case "d":
			m.quizSettings.Difficulty = nextDifficulty(m.quizSettings.Difficulty)
			m.startQuiz()
		case "c":
			m.quizSettings.Topic = nextTopic(m.quizSettings.Topic)
			m.startQuiz()
		}
		return m, nil
	}

	switch key {
	case "1", "2", "3", "4":
		r, err := m.quiz.Answer(int(key[0] - '1'))
		if err == nil {
			m.lastAnswer = &r
		}
	case "s":
		if cur, ok := m.quiz.Current(); ok && m.quiz.Skip() == nil {
			m.lastAnswer = &quiz.Result{Question: cur}
		}
	}
	return m, nil
}

// show displays the selected element on the current tab and starts a new
// animation chain.
func (m model) show() (model, tea.Cmd) {
	mode, ok := m.tab.mode()
	if !ok {
		return m, nil
	}
	e, err := m.selected()
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	w, h := m.viewport()
	m.surface.Resize(w, h)
	if err := m.sess.Show(e, mode); err != nil {
		m.status = err.Error()
		m.log.Warn("show failed", slog.String("element", e.Symbol), slog.String("error", err.Error()))
	}
	m.token = m.sess.Token()
	m.lastFrame = time.Time{}
	return m, m.frame(m.token)
}

func (m model) switchTab(t tab) (model, tea.Cmd) {
	m.tab = t
	m.scroll = 0
	if _, ok := t.mode(); !ok {
		m.sess.Dispose()
		m.token = m.sess.Token()
		return m, nil
	}
	return m.show()
}

func (m model) showing3D() bool {
	_, ok := m.tab.mode()
	return m.screen == screenDetail && ok
}

// viewport is the character size of the 3D view for the window.
func (m model) viewport() (int, int) {
	return max(m.width-4, 20), max(m.height-9, 8)
}

func (m model) selected() (chem.Element, error) {
	return m.cat.ByNumber(m.grid[m.row][m.col])
}

// move steps the cursor over empty cells in direction (dr, dc). It stays
// put when no element lies that way.
func (m *model) move(dr, dc int) {
	r, c := m.row+dr, m.col+dc
	for r >= 0 && r < len(m.grid) && c >= 0 && c < len(m.grid[r]) {
		if m.grid[r][c] != 0 {
			m.row, m.col = r, c
			return
		}
		r, c = r+dr, c+dc
	}
}

// step selects the element with the next or previous atomic number.
func (m *model) step(d int) {
	n := m.grid[m.row][m.col] + d
	if n < 1 {
		n = m.cat.Len()
	}
	if n > m.cat.Len() {
		n = 1
	}
	m.jumpTo(n)
}

func (m *model) jumpTo(number int) {
	for r, row := range m.grid {
		for c, n := range row {
			if n == number {
				m.row, m.col = r, c
				return
			}
		}
	}
}

func (m *model) cycleTheme() {
	m.theme = NextTheme(m.theme.Name)
	m.st = newStyles(m.theme)
	m.cfg.Theme = m.theme.Name
	m.status = "theme " + m.theme.Name
	if m.cfgPath == "" {
		return
	}
	if err := config.Save(m.cfgPath, m.cfg); err != nil {
		m.status = "theme not saved: " + err.Error()
		m.log.Warn("saving config", slog.String("path", m.cfgPath), slog.String("error", err.Error()))
	}
}

func (m *model) toggleCompare() {
	e, err := m.selected()
	if err != nil {
		return
	}
	if err := m.tray.Toggle(e); err != nil {
		m.status = err.Error()
		return
	}
	if m.tray.Contains(e.Number) {
		m.status = fmt.Sprintf("%s added to comparison", e.Symbol)
	} else {
		m.status = fmt.Sprintf("%s removed from comparison", e.Symbol)
	}
}

func (m *model) startQuiz() {
	m.quiz = quiz.New(m.cat, m.quizSettings, m.rng)
	m.lastAnswer = nil
}

func nextDifficulty(d quiz.Difficulty) quiz.Difficulty {
	switch d {
	case quiz.Easy:
		return quiz.Medium
	case quiz.Medium:
		return quiz.Hard
	}
	return quiz.Easy
}

func nextTopic(t quiz.Topic) quiz.Topic {
	order := append([]quiz.Topic{quiz.All}, quiz.Topics...)
	for i, o := range order {
		if o == t {
			return order[(i+1)%len(order)]
		}
	}
	return quiz.All
}

// Run starts the explorer in the alternate screen and blocks until it quits.
func Run(o Options) error {
	m := newModel(o)
	defer m.sess.Dispose()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
