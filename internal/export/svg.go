package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/periodix/internal/render"
	"github.com/san-kum/periodix/internal/scene"
)

// SceneToSVG draws the scene under root as a w by h vector image, painting
// shapes back to front.
func SceneToSVG(root *scene.Node, view *scene.View, width, height int) string {
	bg := "#121a2b"
	if view != nil && view.Background != "" {
		bg = view.Background
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg))

	for _, p := range render.Project(root, view, width, height, 1) {
		switch p.Kind {
		case render.Disc:
			c := p.Points[0]
			if p.Style == scene.Transparent {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-opacity="0.4"/>
`, c.X, c.Y, p.Radius, p.Color))
			} else {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, c.X, c.Y, p.Radius, p.Color))
			}
		case render.Line:
			a, b := p.Points[0], p.Points[1]
			dash := ""
			if p.Style == scene.Dashed {
				dash = ` stroke-dasharray="6 3"`
			}
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"%s/>
`, a.X, a.Y, b.X, b.Y, p.Color, dash))
		case render.Ring:
			sb.WriteString(`<polygon fill="none" stroke="` + p.Color + `" stroke-opacity="0.4" points="`)
			for i, pt := range p.Points {
				if i > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", pt.X, pt.Y))
			}
			sb.WriteString("\"/>\n")
		case render.Text:
			c := p.Points[0]
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="sans-serif" font-size="14" text-anchor="middle">%s</text>
`, c.X, c.Y, p.Color, escape(p.Text)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a braille canvas to SVG dots.
func CanvasToSVG(canvas *render.Canvas, scale float64, fg string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fg))

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrendToSVG plots a property across atomic numbers. NaN values are gaps
// that break the line.
func TrendToSVG(values []float64, width, height int, strokeColor string) string {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		minY, maxY = math.Min(minY, v), math.Max(maxY, v)
	}
	if len(values) < 2 || math.IsInf(minY, 1) {
		return ""
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, strokeColor))

	pen := false
	for i, v := range values {
		if math.IsNaN(v) {
			pen = false
			continue
		}
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if pen {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" M%.1f,%.1f", x, y))
			pen = true
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return xmlEscaper.Replace(s) }
