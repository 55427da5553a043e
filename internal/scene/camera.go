package scene

import "math"

const (
	DefaultFOV      = 75.0
	DefaultDistance = 5.0
)

// Camera looks down -Z at the origin from Distance. RotX and RotY orbit the
// view; Zoom scales the projection.
type Camera struct {
	FOV        float64
	Distance   float64
	Near       float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset restores the initial viewpoint.
func (c *Camera) Reset() {
	*c = Camera{FOV: DefaultFOV, Distance: DefaultDistance, Near: 0.1, Zoom: 1}
}

func (c *Camera) Orbit(dx, dy float64) { c.RotY += dx; c.RotX += dy }
func (c *Camera) ZoomIn()              { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()             { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// ToCamera maps a world point into camera space.
func (c *Camera) ToCamera(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p.Scale(c.Zoom)
}

// Project converts a world point to screen coordinates on a w by h surface.
// aspect is the width of one screen unit relative to its height. It returns
// the screen position, the scale factor at that depth, the camera-space depth
// and whether the point lies in front of the camera.
func (c *Camera) Project(p Vec3, w, h int, aspect float64) (x, y, scale, depth float64, ok bool) {
	v := c.ToCamera(p)
	dist := c.Distance - v.Z
	if dist <= c.Near {
		return 0, 0, 0, v.Z, false
	}
	if aspect <= 0 {
		aspect = 1
	}
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	half := float64(h) / 2
	scale = f * half / dist
	x = float64(w)/2 + v.X*scale/aspect
	y = half - v.Y*scale
	return x, y, scale, v.Z, true
}

// Light is a directional light; the zero Direction is ambient.
type Light struct {
	Direction Vec3
	Intensity float64
}

// Lighting returns the summed diffuse factor for a surface normal, clamped
// to [0, 1].
func Lighting(lights []Light, normal Vec3) float64 {
	total := 0.0
	for _, l := range lights {
		if l.Direction == (Vec3{}) {
			total += l.Intensity
			continue
		}
		if d := normal.Dot(l.Direction.Normalize()); d > 0 {
			total += d * l.Intensity
		}
	}
	return math.Max(0, math.Min(1, total))
}

// View is everything a surface needs besides the scene itself.
type View struct {
	Camera     *Camera
	Lights     []Light
	Background string
}

// DefaultLights are a dim ambient term plus a key light from the upper right.
func DefaultLights() []Light {
	return []Light{
		{Intensity: 0.25},
		{Direction: Vec3{1, 1, 1}, Intensity: 0.8},
	}
}
