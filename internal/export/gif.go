package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/san-kum/periodix/internal/scene"
)

var ErrEmptyScene = errors.New("export: scene has nothing to trace")

// GIFOptions controls the rotating ray-traced animation.
type GIFOptions struct {
	Width    int
	Height   int
	Frames   int
	Delay    int // hundredths of a second per frame
	Distance float64
	Tilt     float64 // radians about X, applied after the turntable rotation
}

func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Width: 320, Height: 240, Frames: 120, Delay: 5, Distance: 6, Tilt: 0.3}
}

func (o GIFOptions) withDefaults() GIFOptions {
	d := DefaultGIFOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Frames <= 0 {
		o.Frames = d.Frames
	}
	if o.Delay <= 0 {
		o.Delay = d.Delay
	}
	if o.Distance <= 0 {
		o.Distance = d.Distance
	}
	return o
}

type sphere struct {
	center scene.Vec3
	radius float64
	color  color.RGBA
}

type cylinder struct {
	start, end scene.Vec3
	radius     float64
	color      color.RGBA
}

type tracer struct {
	spheres   []sphere
	cylinders []cylinder
	bg        color.RGBA
}

const (
	ambient      = 0.4
	diffuseK     = 1.0
	specularK    = 0.7
	shininess    = 32.0
	shadowBias   = 1e-3
	torusSamples = 36
)

var lightDir = scene.V(-1, 1, 1).Normalize()

// collect turns the scene into world-space primitives. Tori become a ring of
// small spheres and wireframe edges become thin cylinders; labels are skipped.
func collect(root *scene.Node) *tracer {
	t := &tracer{bg: parseHex("#121A2B")}
	root.Walk(func(n *scene.Node) {
		s := n.WorldScale()
		c := parseHex(n.Color)
		switch n.Kind {
		case scene.KindSphere:
			t.spheres = append(t.spheres, sphere{n.WorldPosition(), n.Radius * s, c})
		case scene.KindCylinder:
			half := n.Length / 2
			t.cylinders = append(t.cylinders, cylinder{
				start:  n.ToWorld(scene.V(0, -half, 0)),
				end:    n.ToWorld(scene.V(0, half, 0)),
				radius: n.Radius * s,
				color:  c,
			})
		case scene.KindTorus:
			tube := math.Max(n.Tube, 0.02) * s
			for i := 0; i < torusSamples; i++ {
				a := 2 * math.Pi * float64(i) / torusSamples
				p := n.ToWorld(scene.V(n.Radius*math.Cos(a), n.Radius*math.Sin(a), 0))
				t.spheres = append(t.spheres, sphere{p, tube, c})
			}
		case scene.KindWireframe:
			for _, e := range n.Edges {
				t.cylinders = append(t.cylinders, cylinder{
					start:  n.ToWorld(e.A),
					end:    n.ToWorld(e.B),
					radius: 0.01 * s,
					color:  c,
				})
			}
		}
	})
	return t
}

// rotated returns a copy of the tracer turned by yaw about Y then tilt about X.
func (t *tracer) rotated(yaw, tilt float64) *tracer {
	q := scene.QuatFromAxisAngle(scene.UnitX, tilt).Mul(scene.QuatFromAxisAngle(scene.UnitY, yaw))
	out := &tracer{bg: t.bg}
	out.spheres = make([]sphere, len(t.spheres))
	for i, s := range t.spheres {
		s.center = q.Rotate(s.center)
		out.spheres[i] = s
	}
	out.cylinders = make([]cylinder, len(t.cylinders))
	for i, c := range t.cylinders {
		c.start, c.end = q.Rotate(c.start), q.Rotate(c.end)
		out.cylinders[i] = c
	}
	return out
}

func intersectSphere(orig, dir scene.Vec3, s sphere) (float64, bool) {
	oc := orig.Sub(s.center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - s.radius*s.radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < shadowBias {
		t = -b + sq
	}
	if t < shadowBias {
		return 0, false
	}
	return t, true
}

// intersectCylinder hits the side of a capped cylinder and returns the
// outward normal at the hit point.
func intersectCylinder(orig, dir scene.Vec3, c cylinder) (float64, scene.Vec3, bool) {
	axis := c.end.Sub(c.start)
	height := axis.Length()
	if height == 0 {
		return 0, scene.Vec3{}, false
	}
	axis = axis.Scale(1 / height)

	oc := orig.Sub(c.start)
	dDotA := dir.Dot(axis)
	ocDotA := oc.Dot(axis)
	dPerp := dir.Sub(axis.Scale(dDotA))
	ocPerp := oc.Sub(axis.Scale(ocDotA))

	best := math.Inf(1)
	var normal scene.Vec3

	a := dPerp.Dot(dPerp)
	if a > 1e-12 {
		b := 2 * dPerp.Dot(ocPerp)
		cc := ocPerp.Dot(ocPerp) - c.radius*c.radius
		disc := b*b - 4*a*cc
		if disc >= 0 {
			sq := math.Sqrt(disc)
			for _, t := range [2]float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
				if t < shadowBias || t >= best {
					continue
				}
				h := ocDotA + t*dDotA
				if h < 0 || h > height {
					continue
				}
				best = t
				p := orig.Add(dir.Scale(t))
				onAxis := c.start.Add(axis.Scale(h))
				normal = p.Sub(onAxis).Normalize()
			}
		}
	}

	if math.Abs(dDotA) > 1e-12 {
		for _, cp := range [2]struct {
			center scene.Vec3
			n      scene.Vec3
		}{{c.start, axis.Scale(-1)}, {c.end, axis}} {
			t := cp.center.Sub(orig).Dot(axis) / dDotA
			if t < shadowBias || t >= best {
				continue
			}
			p := orig.Add(dir.Scale(t))
			if p.Sub(cp.center).Length() <= c.radius {
				best = t
				normal = cp.n
			}
		}
	}

	if math.IsInf(best, 1) {
		return 0, scene.Vec3{}, false
	}
	return best, normal, true
}

func (t *tracer) hit(orig, dir scene.Vec3) (dist float64, p, n scene.Vec3, col color.RGBA, ok bool) {
	dist = math.Inf(1)
	for _, s := range t.spheres {
		if d, hit := intersectSphere(orig, dir, s); hit && d < dist {
			dist, col, ok = d, s.color, true
			p = orig.Add(dir.Scale(d))
			n = p.Sub(s.center).Normalize()
		}
	}
	for _, c := range t.cylinders {
		if d, normal, hit := intersectCylinder(orig, dir, c); hit && d < dist {
			dist, col, ok = d, c.color, true
			p = orig.Add(dir.Scale(d))
			n = normal
		}
	}
	return
}

func (t *tracer) occluded(p scene.Vec3) bool {
	_, _, _, _, ok := t.hit(p.Add(lightDir.Scale(shadowBias*10)), lightDir)
	return ok
}

func (t *tracer) rayColor(orig, dir scene.Vec3) color.RGBA {
	_, p, n, base, ok := t.hit(orig, dir)
	if !ok {
		return t.bg
	}

	shade := ambient
	spec := 0.0
	if !t.occluded(p) {
		shade += diffuseK * math.Max(0, n.Dot(lightDir))
		view := dir.Scale(-1)
		reflect := n.Scale(2 * n.Dot(lightDir)).Sub(lightDir)
		spec = specularK * math.Pow(math.Max(0, reflect.Dot(view)), shininess)
	}

	ch := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*shade+255*spec))
	}
	return color.RGBA{ch(base.R), ch(base.G), ch(base.B), 255}
}

// frame renders one image with rows traced concurrently.
func (t *tracer) frame(width, height int, distance float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fov := math.Pi / 3
	scale := math.Tan(fov / 2)
	aspect := float64(width) / float64(height)
	eye := scene.V(0, 0, distance)

	var wg sync.WaitGroup
	for y := 0; y < height; y++ {
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			for x := 0; x < width; x++ {
				px := (2*(float64(x)+0.5)/float64(width) - 1) * aspect * scale
				py := (1 - 2*(float64(y)+0.5)/float64(height)) * scale
				dir := scene.V(px, py, -1).Normalize()
				img.SetRGBA(x, y, t.rayColor(eye, dir))
			}
		}(y)
	}
	wg.Wait()
	return img
}

func toPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, image.Point{})
	return p
}

// EncodeGIF ray-traces the scene under root as a full turn about the
// vertical axis and writes the animation to w.
func EncodeGIF(ctx context.Context, w io.Writer, root *scene.Node, opts GIFOptions) error {
	opts = opts.withDefaults()
	if root == nil {
		return ErrEmptyScene
	}
	base := collect(root)
	if len(base.spheres) == 0 && len(base.cylinders) == 0 {
		return ErrEmptyScene
	}

	anim := &gif.GIF{LoopCount: 0}
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		yaw := 2 * math.Pi * float64(i) / float64(opts.Frames)
		img := base.rotated(yaw, opts.Tilt).frame(opts.Width, opts.Height, opts.Distance)
		anim.Image = append(anim.Image, toPaletted(img))
		anim.Delay = append(anim.Delay, opts.Delay)
	}
	return gif.EncodeAll(w, anim)
}

// parseHex reads "#RRGGBB"; anything else is a neutral grey.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{0xCC, 0xCC, 0xCC, 0xFF}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{0xCC, 0xCC, 0xCC, 0xFF}
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xFF}
}
