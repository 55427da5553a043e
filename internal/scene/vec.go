package scene

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func V(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// FromArray converts a [x, y, z] data triple.
func FromArray(a [3]float64) Vec3 { return Vec3{a[0], a[1], a[2]} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}
func (v Vec3) Lerp(o Vec3, t float64) Vec3 { return v.Add(o.Sub(v).Scale(t)) }

// ApproxEqual compares component-wise within eps.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

var (
	UnitX = Vec3{1, 0, 0}
	UnitY = Vec3{0, 1, 0}
	UnitZ = Vec3{0, 0, 1}
)

// Quat is a rotation quaternion. The zero value rotates nothing.
type Quat struct {
	W, X, Y, Z float64
}

func Identity() Quat { return Quat{W: 1} }

func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalize()
	s := math.Sin(angle / 2)
	return Quat{W: math.Cos(angle / 2), X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// QuatFromUnitVectors returns the shortest rotation taking unit vector from
// onto unit vector to. Opposite vectors rotate half a turn about any axis
// perpendicular to from.
func QuatFromUnitVectors(from, to Vec3) Quat {
	r := from.Dot(to) + 1
	var q Quat
	if r < 1e-9 {
		if math.Abs(from.X) > math.Abs(from.Z) {
			q = Quat{W: 0, X: -from.Y, Y: from.X, Z: 0}
		} else {
			q = Quat{W: 0, X: 0, Y: -from.Z, Z: from.Y}
		}
	} else {
		c := from.Cross(to)
		q = Quat{W: r, X: c.X, Y: c.Y, Z: c.Z}
	}
	return q.Normalize()
}

func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if l == 0 {
		return Identity()
	}
	return Quat{q.W / l, q.X / l, q.Y / l, q.Z / l}
}

// Mul composes rotations: the result applies o first, then q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}
