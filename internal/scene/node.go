package scene

import "math"

type Kind int

const (
	KindGroup Kind = iota
	KindSphere
	KindCylinder
	KindTorus
	KindLabel
	KindWireframe
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindSphere:
		return "sphere"
	case KindCylinder:
		return "cylinder"
	case KindTorus:
		return "torus"
	case KindLabel:
		return "label"
	case KindWireframe:
		return "wireframe"
	default:
		return "unknown"
	}
}

// Drawable reports whether nodes of this kind hold GPU-style resources.
func (k Kind) Drawable() bool { return k != KindGroup }

type Style int

const (
	Solid Style = iota
	Dashed
	Transparent
)

type Edge struct {
	A, B Vec3
}

// Orbit drives an electron around its shell. Plane selects the orbit plane:
// 0 is XY, 1 is XZ, 2 is YZ. Lift is a fixed offset along the remaining axis.
type Orbit struct {
	Radius float64
	Speed  float64
	Phase  float64
	Plane  int
	Lift   float64
}

// At returns the orbit position after t seconds.
func (o Orbit) At(t float64) Vec3 {
	a := o.Speed*t + o.Phase
	c, s := o.Radius*math.Cos(a), o.Radius*math.Sin(a)
	switch o.Plane {
	case 1:
		return Vec3{c, o.Lift, s}
	case 2:
		return Vec3{o.Lift, c, s}
	default:
		return Vec3{c, s, o.Lift}
	}
}

// Node is one element of the scene tree. Transforms compose parent first:
// a point p local to n lands at Position + Rotation(Scale*p) in the parent.
//
// Spheres use Radius. Cylinders run along their local Y axis with Length and
// Radius. Tori lie in their local XY plane with Radius and Tube. Labels carry
// Text. Wireframes carry Edges in local coordinates.
type Node struct {
	Kind     Kind
	Name     string
	Position Vec3
	Rotation Quat
	Scale    float64
	Color    string
	Style    Style

	Radius float64
	Length float64
	Tube   float64
	Text   string
	Edges  []Edge
	Orbit  *Orbit

	Children []*Node
	parent   *Node
	acquired bool
	released bool
}

func newNode(k Kind, name string) *Node {
	return &Node{Kind: k, Name: name, Rotation: Identity(), Scale: 1}
}

func NewGroup(name string) *Node { return newNode(KindGroup, name) }

func NewSphere(name string, radius float64, color string) *Node {
	n := newNode(KindSphere, name)
	n.Radius, n.Color = radius, color
	return n
}

func NewCylinder(name string, radius, length float64, color string) *Node {
	n := newNode(KindCylinder, name)
	n.Radius, n.Length, n.Color = radius, length, color
	return n
}

func NewTorus(name string, radius, tube float64, color string) *Node {
	n := newNode(KindTorus, name)
	n.Radius, n.Tube, n.Color = radius, tube, color
	return n
}

func NewLabel(text, color string) *Node {
	n := newNode(KindLabel, text)
	n.Text, n.Color = text, color
	return n
}

func NewWireframe(name string, edges []Edge, color string) *Node {
	n := newNode(KindWireframe, name)
	n.Edges, n.Color = edges, color
	return n
}

func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

func (n *Node) Parent() *Node { return n.parent }

// Detach removes n from its parent.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Released reports whether the node's resources have been given back.
func (n *Node) Released() bool { return n.released }

// Walk visits n and its descendants depth first.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns how many nodes of kind k are in the subtree.
func (n *Node) Count(k Kind) int {
	count := 0
	n.Walk(func(m *Node) {
		if m.Kind == k {
			count++
		}
	})
	return count
}

// Find returns the first node named name in the subtree.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(m *Node) {
		if found == nil && m.Name == name {
			found = m
		}
	})
	return found
}

// ToParent maps a point from n's local space into its parent's space.
func (n *Node) ToParent(p Vec3) Vec3 {
	s := n.Scale
	if s == 0 {
		s = 1
	}
	return n.Position.Add(n.Rotation.Rotate(p.Scale(s)))
}

// ToWorld maps a point from n's local space to world space.
func (n *Node) ToWorld(p Vec3) Vec3 {
	for m := n; m != nil; m = m.parent {
		p = m.ToParent(p)
	}
	return p
}

// WorldPosition is the origin of n in world space.
func (n *Node) WorldPosition() Vec3 {
	return n.ToWorld(Vec3{})
}

// WorldScale multiplies the uniform scales from n up to the root.
func (n *Node) WorldScale() float64 {
	s := 1.0
	for m := n; m != nil; m = m.parent {
		if m.Scale != 0 {
			s *= m.Scale
		}
	}
	return s
}
