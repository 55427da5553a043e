package render

import (
	"errors"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/san-kum/periodix/internal/scene"
)

// ErrNoBraille is returned by Check on terminals that cannot show braille.
var ErrNoBraille = errors.New("render: terminal cannot display braille patterns")

const dashLength = 3

// Terminal is a braille render surface. It keeps the last frame for the
// caller to print.
type Terminal struct {
	mu       sync.Mutex
	canvas   *Canvas
	w, h     int
	frame    string
	plain    string
	errMsg   string
	released bool
	// Getenv reads the environment for the capability check.
	Getenv func(string) string
	// Color enables lipgloss colouring of the frame.
	Color bool
}

func NewTerminal(w, h int) *Terminal {
	t := &Terminal{Getenv: os.Getenv, Color: true}
	t.Resize(w, h)
	return t
}

// Check rejects dumb terminals, which cannot draw braille.
func (t *Terminal) Check() error {
	getenv := t.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if strings.EqualFold(getenv("TERM"), "dumb") {
		return ErrNoBraille
	}
	return nil
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.w, t.h
}

func (t *Terminal) Resize(w, h int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	t.w, t.h = w, h
	t.canvas = NewCanvas(w, h)
	t.released = false
}

func (t *Terminal) Render(root *scene.Node, view *scene.View) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.canvas == nil || t.w == 0 || t.h == 0 {
		return nil
	}
	t.errMsg = ""
	t.canvas.Clear()
	Draw(t.canvas, Project(root, view, t.w*2, t.h*4, 1))
	t.plain = t.canvas.String()
	if t.Color {
		t.frame = t.canvas.Styled()
	} else {
		t.frame = t.plain
	}
	return nil
}

func (t *Terminal) ShowError(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errMsg = msg
	t.frame, t.plain = msg+"\n", msg+"\n"
}

// Release drops the canvas. A later Resize brings the surface back.
func (t *Terminal) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.canvas, t.frame, t.plain = nil, "", ""
	t.released = true
}

// Frame returns the last rendered frame, or the error message shown in its
// place.
func (t *Terminal) Frame() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

// PlainFrame is Frame without colour codes.
func (t *Terminal) PlainFrame() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.plain
}

func (t *Terminal) Released() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.released
}

// Draw paints primitives onto c in order. Primitive coordinates are dots.
func Draw(c *Canvas, prims []Primitive) {
	for _, p := range prims {
		c.SetPen(p.Color)
		switch p.Kind {
		case Disc:
			cx, cy := round(p.Points[0].X), round(p.Points[0].Y)
			r := round(p.Radius)
			if p.Style == scene.Transparent {
				c.Circle(cx, cy, r)
			} else {
				c.FillCircle(cx, cy, r)
			}
		case Line:
			dash := 0
			if p.Style == scene.Dashed {
				dash = dashLength
			}
			a, b := p.Points[0], p.Points[1]
			c.DrawLine(round(a.X), round(a.Y), round(b.X), round(b.Y), dash)
		case Ring:
			for i := range p.Points {
				a, b := p.Points[i], p.Points[(i+1)%len(p.Points)]
				c.DrawLine(round(a.X), round(a.Y), round(b.X), round(b.Y), 0)
			}
		case Text:
			col := round(p.Points[0].X)/2 - len([]rune(p.Text))/2
			c.Text(col, round(p.Points[0].Y)/4, p.Text)
		}
	}
	c.SetPen("")
}

func round(v float64) int { return int(math.Round(v)) }
