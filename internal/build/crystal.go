package build

import (
	"fmt"
	"math"

	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/modeldata"
	"github.com/san-kum/periodix/internal/scene"
)

// lattice is the site list of one unit cell. site holds the descriptor site
// index used for each position.
type lattice struct {
	positions []scene.Vec3
	site      []int
	bonds     [][2]int
}

var cubeEdges = [][2]int{
	{0, 1}, {0, 2}, {0, 4},
	{1, 3}, {1, 5},
	{2, 3}, {2, 6},
	{3, 7},
	{4, 5}, {4, 6},
	{5, 7},
	{6, 7},
}

func corners(c float64) []scene.Vec3 {
	return []scene.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: c, Y: 0, Z: 0}, {X: 0, Y: c, Z: 0}, {X: c, Y: c, Z: 0},
		{X: 0, Y: 0, Z: c}, {X: c, Y: 0, Z: c}, {X: 0, Y: c, Z: c}, {X: c, Y: c, Z: c},
	}
}

func simpleCubic(c float64) lattice {
	return lattice{positions: corners(c), site: make([]int, 8), bonds: cubeEdges}
}

// faceCentered places the 8 corners on site 0 and twelve mid-cell sites on
// site 1. Sites only; no bonds are drawn.
func faceCentered(c float64) lattice {
	h := c / 2
	pos := append(corners(c),
		scene.Vec3{X: h}, scene.Vec3{Y: h}, scene.Vec3{Z: h},
		scene.Vec3{X: c, Y: h}, scene.Vec3{X: c, Z: h},
		scene.Vec3{X: h, Y: c}, scene.Vec3{Y: c, Z: h},
		scene.Vec3{X: c, Y: c, Z: h},
		scene.Vec3{X: h, Z: c}, scene.Vec3{Y: h, Z: c},
		scene.Vec3{X: c, Y: h, Z: c}, scene.Vec3{X: h, Y: c, Z: c},
	)
	site := make([]int, len(pos))
	for i := 8; i < len(site); i++ {
		site[i] = 1
	}
	return lattice{positions: pos, site: site}
}

func bodyCentered(c float64) lattice {
	pos := append(corners(c), scene.Vec3{X: c / 2, Y: c / 2, Z: c / 2})
	site := make([]int, len(pos))
	site[8] = 1
	bonds := make([][2]int, 8)
	for i := range bonds {
		bonds[i] = [2]int{8, i}
	}
	return lattice{positions: pos, site: site, bonds: bonds}
}

// hexagonalClosePacked stacks three triangular layers h/3 apart, where
// h = c*sqrt(8/3). The middle layer is shifted onto the centroid of the
// triangle below and takes the second site colour.
func hexagonalClosePacked(c float64) lattice {
	t := c * math.Sqrt(3) / 2
	h := c * math.Sqrt(8.0/3.0)
	tri := []scene.Vec3{{X: 0, Y: 0, Z: 0}, {X: c, Y: 0, Z: 0}, {X: c / 2, Y: 0, Z: t}}
	shift := scene.Vec3{X: c / 2, Z: t / 3}

	var l lattice
	for layer := 0; layer < 3; layer++ {
		base := len(l.positions)
		lift := scene.Vec3{Y: float64(layer) * h / 3}
		for _, p := range tri {
			p = p.Add(lift)
			if layer%2 == 1 {
				p = p.Add(shift)
			}
			l.positions = append(l.positions, p)
			l.site = append(l.site, layer%2)
		}
		l.bonds = append(l.bonds, [2]int{base, base + 1}, [2]int{base + 1, base + 2}, [2]int{base + 2, base})
	}
	return l
}

var diamondBonds = [][2]int{
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
	{4, 1}, {4, 2}, {5, 2}, {5, 3},
	{6, 0}, {6, 3}, {7, 0}, {7, 1},
}

// diamondCubic uses four face-centred positions and four tetrahedral
// positions at quarter offsets, bonded by a fixed pairing table.
func diamondCubic(c float64) lattice {
	q, h := c/4, c/2
	pos := []scene.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 0, Y: h, Z: h}, {X: h, Y: 0, Z: h}, {X: h, Y: h, Z: 0},
		{X: q, Y: q, Z: q}, {X: q, Y: 3 * q, Z: 3 * q}, {X: 3 * q, Y: q, Z: 3 * q}, {X: 3 * q, Y: 3 * q, Z: q},
	}
	return lattice{positions: pos, site: []int{0, 0, 0, 0, 1, 1, 1, 1}, bonds: diamondBonds}
}

func latticeFor(kind modeldata.Lattice, c float64) lattice {
	switch kind {
	case modeldata.FaceCenteredCubic:
		return faceCentered(c)
	case modeldata.BodyCenteredCubic:
		return bodyCentered(c)
	case modeldata.HexagonalClosePacked:
		return hexagonalClosePacked(c)
	case modeldata.DiamondCubic:
		return diamondCubic(c)
	default:
		return simpleCubic(c)
	}
}

// BuildCrystal draws one unit cell of e's lattice, centred on the origin.
func (b *Builder) BuildCrystal(e chem.Element) (*Model, error) {
	desc, err := b.resolver.ResolveCrystal(e.Number, e.Symbol)
	if err != nil {
		return nil, err
	}
	if err := desc.Validate(fmt.Sprint(e.Number)); err != nil {
		return nil, err
	}
	return &Model{
		Mode:        ModeCrystal,
		Title:       desc.Name,
		Description: crystalDescription(e, desc.Name),
		Root:        b.crystalTree(desc),
	}, nil
}

func (b *Builder) crystalTree(desc modeldata.CrystalDescriptor) *scene.Node {
	c := b.opts.CellSize
	l := latticeFor(desc.Lattice, c)

	root := scene.NewGroup("crystal")
	cell := scene.NewGroup("cell")
	cell.Position = scene.V(-c/2, -c/2, -c/2)
	root.Add(cell)

	for i, p := range l.positions {
		s := desc.Site(l.site[i])
		// diamond shares the first symbol and only alternates colour
		sym := s.Symbol
		if desc.Lattice == modeldata.DiamondCubic {
			sym = desc.Site(0).Symbol
		}
		n := scene.NewSphere(fmt.Sprintf("site-%d-%s", i, sym), c/10, s.Color)
		n.Position = p
		cell.Add(n)
	}
	for i, pair := range l.bonds {
		cell.Add(bond(fmt.Sprintf("bond-%d", i), l.positions[pair[0]], l.positions[pair[1]], b.opts.BondRadius, scene.Solid))
	}
	cell.Add(cellWireframe(c))
	return root
}

func cellWireframe(c float64) *scene.Node {
	v := corners(c)
	edges := make([]scene.Edge, len(cubeEdges))
	for i, e := range cubeEdges {
		edges[i] = scene.Edge{A: v[e[0]], B: v[e[1]]}
	}
	return scene.NewWireframe("unit-cell", edges, CellEdgeColor)
}
