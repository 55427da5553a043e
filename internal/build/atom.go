package build

import (
	"fmt"
	"math"

	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/scene"
)

const shellTube = 0.02

// BuildAtom draws the Bohr model of e.
func (b *Builder) BuildAtom(e chem.Element) *Model {
	root := scene.NewGroup("atom")
	root.Add(scene.NewSphere("nucleus", b.opts.NucleusRadius, NucleusColor))

	planes := []scene.Quat{
		scene.Identity(),
		scene.QuatFromAxisAngle(scene.UnitX, math.Pi/2),
		scene.QuatFromAxisAngle(scene.UnitY, math.Pi/2),
	}

	for i, shell := range LayoutShells(e.Shells, b.opts) {
		for p, q := range planes {
			ring := scene.NewTorus(fmt.Sprintf("shell-%d-%d", i, p), shell.Radius, shellTube, ShellColor)
			ring.Rotation = q
			ring.Style = scene.Transparent
			root.Add(ring)
		}
		for k, el := range shell.Electrons {
			n := scene.NewSphere(fmt.Sprintf("electron-%d-%d", i, k), b.opts.ElectronRadius, ElectronColor)
			n.Orbit = &scene.Orbit{
				Radius: shell.Radius,
				Speed:  shell.Speed,
				Phase:  el.Angle,
				Plane:  el.Plane,
				Lift:   el.Lift,
			}
			n.Position = n.Orbit.At(0)
			root.Add(n)
		}
	}

	return &Model{
		Mode:        ModeAtom,
		Title:       fmt.Sprintf("%s atom", e.Name),
		Description: atomDescription(e),
		Root:        root,
	}
}

// Animate moves every orbiting node in the tree to its position t seconds
// into the animation.
func Animate(root *scene.Node, t float64) {
	root.Walk(func(n *scene.Node) {
		if n.Orbit != nil {
			n.Position = n.Orbit.At(t)
		}
	})
}
