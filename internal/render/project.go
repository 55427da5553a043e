package render

import (
	"math"
	"sort"

	"github.com/san-kum/periodix/internal/scene"
)

type PrimitiveKind int

const (
	Disc PrimitiveKind = iota
	Line
	Ring
	Text
)

type Point struct{ X, Y float64 }

// Primitive is one projected shape in screen coordinates.
type Primitive struct {
	Kind   PrimitiveKind
	Points []Point
	Radius float64
	Depth  float64
	Color  string
	Style  scene.Style
	Text   string
}

// ringSegments is the number of points used for torus outlines.
const ringSegments = 48

// Project flattens the scene under root into primitives for a w by h
// surface, sorted back to front. aspect is the width of one screen unit
// relative to its height. Shapes behind the camera are dropped.
func Project(root *scene.Node, view *scene.View, w, h int, aspect float64) []Primitive {
	if root == nil || view == nil || view.Camera == nil || w <= 0 || h <= 0 {
		return nil
	}
	cam := view.Camera
	var out []Primitive

	project := func(p scene.Vec3) (Point, float64, float64, bool) {
		x, y, s, d, ok := cam.Project(p, w, h, aspect)
		return Point{x, y}, s, d, ok
	}

	root.Walk(func(n *scene.Node) {
		switch n.Kind {
		case scene.KindSphere:
			c := n.WorldPosition()
			pt, s, d, ok := project(c)
			if !ok {
				return
			}
			out = append(out, Primitive{
				Kind:   Disc,
				Points: []Point{pt},
				Radius: n.Radius * n.WorldScale() * cam.Zoom * s,
				Depth:  d,
				Color:  n.Color,
				Style:  n.Style,
			})
		case scene.KindCylinder:
			a, da, oka := projectLocal(cam, n, scene.V(0, -n.Length/2, 0), w, h, aspect)
			b, db, okb := projectLocal(cam, n, scene.V(0, n.Length/2, 0), w, h, aspect)
			if !oka || !okb {
				return
			}
			out = append(out, Primitive{Kind: Line, Points: []Point{a, b}, Depth: (da + db) / 2, Color: n.Color, Style: n.Style})
		case scene.KindTorus:
			pts := make([]Point, 0, ringSegments)
			depth := 0.0
			for i := 0; i < ringSegments; i++ {
				t := 2 * math.Pi * float64(i) / ringSegments
				p, d, ok := projectLocal(cam, n, scene.V(n.Radius*math.Cos(t), n.Radius*math.Sin(t), 0), w, h, aspect)
				if !ok {
					return
				}
				pts = append(pts, p)
				depth += d
			}
			out = append(out, Primitive{Kind: Ring, Points: pts, Depth: depth / ringSegments, Color: n.Color, Style: n.Style})
		case scene.KindLabel:
			pt, _, d, ok := project(n.WorldPosition())
			if !ok {
				return
			}
			out = append(out, Primitive{Kind: Text, Points: []Point{pt}, Depth: d, Color: n.Color, Text: n.Text})
		case scene.KindWireframe:
			for _, e := range n.Edges {
				a, da, oka := projectLocal(cam, n, e.A, w, h, aspect)
				b, db, okb := projectLocal(cam, n, e.B, w, h, aspect)
				if oka && okb {
					out = append(out, Primitive{Kind: Line, Points: []Point{a, b}, Depth: (da + db) / 2, Color: n.Color, Style: n.Style})
				}
			}
		}
	})

	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out
}

func projectLocal(cam *scene.Camera, n *scene.Node, p scene.Vec3, w, h int, aspect float64) (Point, float64, bool) {
	x, y, _, d, ok := cam.Project(n.ToWorld(p), w, h, aspect)
	return Point{x, y}, d, ok
}
