package build

import (
	"fmt"

	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/modeldata"
	"github.com/san-kum/periodix/internal/scene"
)

const labelGap = 0.1

// BuildMolecule draws the representative molecule for e. A descriptor whose
// bonds reference missing atoms is rejected with modeldata.ErrDataIntegrity.
func (b *Builder) BuildMolecule(e chem.Element) (*Model, error) {
	desc, err := b.resolver.ResolveMolecule(e.Number, e.Symbol)
	if err != nil {
		return nil, err
	}
	root, err := b.moleculeTree(desc, fmt.Sprint(e.Number))
	if err != nil {
		return nil, err
	}
	return &Model{
		Mode:        ModeMolecule,
		Title:       desc.Name,
		Description: moleculeDescription(e, desc.Name),
		Root:        root,
	}, nil
}

func (b *Builder) moleculeTree(desc modeldata.MoleculeDescriptor, key string) (*scene.Node, error) {
	if err := desc.Validate(key); err != nil {
		return nil, err
	}

	root := scene.NewGroup("molecule")
	root.Scale = b.opts.MoleculeScale

	for i, a := range desc.Atoms {
		radius, err := b.resolver.ResolveRadius(a.Symbol)
		if err != nil {
			return nil, err
		}
		color, err := b.resolver.ResolveColor(a.Symbol)
		if err != nil {
			return nil, err
		}
		r := radius / 100
		pos := scene.FromArray(a.Position)

		atom := scene.NewSphere(fmt.Sprintf("atom-%d", i), r, color)
		atom.Position = pos
		label := scene.NewLabel(a.Symbol, LabelColor)
		label.Position = pos.Add(scene.V(0, r+labelGap, 0))
		root.Add(atom, label)
	}

	for i, bs := range desc.Bonds {
		from := scene.FromArray(desc.Atoms[bs.From].Position)
		to := scene.FromArray(desc.Atoms[bs.To].Position)
		style := scene.Solid
		if bs.Ionic {
			style = scene.Dashed
		}
		root.Add(b.bondFamily(fmt.Sprintf("bond-%d", i), from, to, bs.BondOrder(), style)...)
	}
	return root, nil
}

// bondFamily returns the cylinders of a bond of the given order. The primary
// cylinder keeps the plain name; the extras are suffixed with their index.
// A double bond is centred on the from-to axis as a pair. Higher orders keep
// the primary on the axis and spread order-1 extras BondOffset apart around
// it.
func (b *Builder) bondFamily(name string, from, to scene.Vec3, order int, style scene.Style) []*scene.Node {
	if order <= 1 {
		return []*scene.Node{bond(name, from, to, b.opts.BondRadius, style)}
	}
	side := perpendicular(to.Sub(from))
	shifted := func(n string, k float64) *scene.Node {
		shift := side.Scale(b.opts.BondOffset * k)
		return bond(n, from.Add(shift), to.Add(shift), b.opts.BondRadius, style)
	}
	if order == 2 {
		return []*scene.Node{
			shifted(name, -0.5),
			shifted(name+"-1", 0.5),
		}
	}
	out := make([]*scene.Node, 0, order)
	out = append(out, bond(name, from, to, b.opts.BondRadius, style))
	for i := 0; i < order-1; i++ {
		out = append(out, shifted(fmt.Sprintf("%s-%d", name, i+1), float64(i)-float64(order-2)/2))
	}
	return out
}
