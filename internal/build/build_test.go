package build

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/modeldata"
	"github.com/san-kum/periodix/internal/scene"
)

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	tables, err := modeldata.Load()
	if err != nil {
		t.Fatalf("model data: %v", err)
	}
	r, err := modeldata.NewResolver(tables, 32)
	if err != nil {
		t.Fatal(err)
	}
	return New(r, DefaultOptions())
}

func element(t *testing.T, sym string) chem.Element {
	t.Helper()
	e, err := chem.MustLoad().BySymbol(sym)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestLayoutShells_Sodium(t *testing.T) {
	shells := LayoutShells([]int{2, 8, 1}, DefaultOptions())
	if len(shells) != 3 {
		t.Fatalf("expected 3 shells, got %d", len(shells))
	}
	want := []int{2, 8, 1}
	for i, s := range shells {
		if len(s.Electrons) != want[i] {
			t.Errorf("shell %d: %d electrons, want %d", i, len(s.Electrons), want[i])
		}
		if i > 0 && s.Radius <= shells[i-1].Radius {
			t.Errorf("shell %d radius %v not above %v", i, s.Radius, shells[i-1].Radius)
		}
		if i > 0 && s.Speed >= shells[i-1].Speed {
			t.Errorf("shell %d speed %v not below %v", i, s.Speed, shells[i-1].Speed)
		}
	}
	if math.Abs(shells[0].Radius-1.8) > 1e-9 {
		t.Errorf("first shell radius = %v, want 1.8", shells[0].Radius)
	}
	if math.Abs(shells[1].Electrons[2].Angle-math.Pi/2) > 1e-9 {
		t.Errorf("unexpected angle %v", shells[1].Electrons[2].Angle)
	}
	if shells[1].Electrons[4].Plane != 1 {
		t.Errorf("round robin plane = %d, want 1", shells[1].Electrons[4].Plane)
	}
}

func TestRandomPlacement_SeededRepeats(t *testing.T) {
	opts := DefaultOptions()
	opts.Placement = RandomPlacement(42)
	a := LayoutShells([]int{2, 8, 18}, opts)
	opts.Placement = RandomPlacement(42)
	b := LayoutShells([]int{2, 8, 18}, opts)
	for i := range a {
		for k := range a[i].Electrons {
			ea, eb := a[i].Electrons[k], b[i].Electrons[k]
			if ea != eb {
				t.Fatalf("shell %d electron %d differs: %+v vs %+v", i, k, ea, eb)
			}
			if ea.Plane < 0 || ea.Plane > 2 || math.Abs(ea.Lift) > 0.1 {
				t.Errorf("out of range layout %+v", ea)
			}
		}
	}
}

func TestBuildAtom(t *testing.T) {
	b := newBuilder(t)
	m := b.BuildAtom(element(t, "Na"))

	if got := m.Root.Count(scene.KindTorus); got != 9 {
		t.Errorf("expected 9 rings, got %d", got)
	}
	if got := m.Root.Count(scene.KindSphere); got != 12 {
		t.Errorf("expected nucleus + 11 electrons, got %d", got)
	}

	e := m.Root.Find("electron-0-0")
	before := e.Position
	Animate(m.Root, 1)
	if e.Position.ApproxEqual(before, 1e-9) {
		t.Error("electron did not move")
	}
	if math.Abs(e.Position.Length()-e.Orbit.Radius) > 1e-9 {
		t.Errorf("electron left its shell: |p| = %v", e.Position.Length())
	}
}

func TestBuildMolecule_Water(t *testing.T) {
	b := newBuilder(t)
	m, err := b.BuildMolecule(element(t, "H"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Title != "Water (H₂O)" {
		t.Errorf("title %q", m.Title)
	}
	if m.Root.Scale != 1.5 {
		t.Errorf("scale = %v", m.Root.Scale)
	}
	if got := m.Root.Count(scene.KindSphere); got != 3 {
		t.Errorf("expected 3 atoms, got %d", got)
	}
	if got := m.Root.Count(scene.KindLabel); got != 3 {
		t.Errorf("expected 3 labels, got %d", got)
	}
	if got := m.Root.Count(scene.KindCylinder); got != 2 {
		t.Errorf("expected 2 bonds, got %d", got)
	}

	o := m.Root.Find("atom-0")
	if math.Abs(o.Radius-0.6) > 1e-9 {
		t.Errorf("oxygen radius = %v, want 0.6", o.Radius)
	}
	label := m.Root.Find("O")
	if math.Abs(label.Position.Y-0.7) > 1e-9 {
		t.Errorf("label height = %v, want 0.7", label.Position.Y)
	}
}

func TestBondCylinderSpansAtoms(t *testing.T) {
	b := newBuilder(t)
	m, err := b.BuildMolecule(element(t, "H"))
	if err != nil {
		t.Fatal(err)
	}
	c := m.Root.Find("bond-1")
	from, to := scene.V(0, 0, 0), scene.V(0.8, 0.6, 0)
	if math.Abs(c.Length-1.0) > 1e-9 {
		t.Errorf("length = %v, want 1", c.Length)
	}
	top := c.ToParent(scene.V(0, c.Length/2, 0))
	bottom := c.ToParent(scene.V(0, -c.Length/2, 0))
	if !top.ApproxEqual(to, 1e-9) || !bottom.ApproxEqual(from, 1e-9) {
		t.Errorf("cylinder ends %+v %+v, want %+v %+v", bottom, top, from, to)
	}
}

func TestDoubleBond_Symmetric(t *testing.T) {
	b := newBuilder(t)
	m, err := b.BuildMolecule(element(t, "O"))
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Root.Count(scene.KindCylinder); got != 2 {
		t.Fatalf("expected primary + 1 extra cylinder, got %d", got)
	}
	primary, extra := m.Root.Find("bond-0"), m.Root.Find("bond-0-1")
	if primary == nil || extra == nil {
		t.Fatal("missing bond cylinders")
	}
	// the O=O axis is the X axis, so offsets show up off it
	dp := scene.V(0, primary.Position.Y, primary.Position.Z)
	de := scene.V(0, extra.Position.Y, extra.Position.Z)
	if math.Abs(dp.Length()-de.Length()) > 1e-9 || dp.Length() == 0 {
		t.Errorf("offsets not equal: %v vs %v", dp.Length(), de.Length())
	}
	if !dp.Add(de).ApproxEqual(scene.Vec3{}, 1e-9) {
		t.Errorf("offsets not opposite: %+v %+v", dp, de)
	}
	if math.Abs(dp.Sub(de).Length()-0.08) > 1e-9 {
		t.Errorf("spacing = %v, want 0.08", dp.Sub(de).Length())
	}
}

func TestTripleBondFamily(t *testing.T) {
	b := newBuilder(t)
	fam := b.bondFamily("b", scene.V(0, 0, 0), scene.V(1, 0, 0), 3, scene.Solid)
	if len(fam) != 3 {
		t.Fatalf("expected 3 cylinders, got %d", len(fam))
	}

	tests := []struct {
		name   string
		offset float64
	}{
		{"b", 0},
		{"b-1", -0.04},
		{"b-2", 0.04},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fam[i]
			if c.Name != tt.name {
				t.Fatalf("name = %q, want %q", c.Name, tt.name)
			}
			if math.Abs(c.Position.X-0.5) > 1e-9 {
				t.Errorf("midpoint x = %v, want 0.5", c.Position.X)
			}
			off := scene.V(0, c.Position.Y, c.Position.Z)
			if math.Abs(off.Length()-math.Abs(tt.offset)) > 1e-9 {
				t.Errorf("offset = %.3f, want %.3f", off.Length(), math.Abs(tt.offset))
			}
		})
	}
	d1 := scene.V(0, fam[1].Position.Y, fam[1].Position.Z)
	d2 := scene.V(0, fam[2].Position.Y, fam[2].Position.Z)
	if !d1.Add(d2).ApproxEqual(scene.Vec3{}, 1e-9) {
		t.Errorf("extras not opposite: %+v %+v", d1, d2)
	}
}

func TestQuadrupleBondFamily(t *testing.T) {
	b := newBuilder(t)
	fam := b.bondFamily("b", scene.V(0, 0, 0), scene.V(1, 0, 0), 4, scene.Solid)
	if len(fam) != 4 {
		t.Fatalf("expected 4 cylinders, got %d", len(fam))
	}
	want := []float64{0, 0.08, 0, 0.08}
	for i, w := range want {
		off := scene.V(0, fam[i].Position.Y, fam[i].Position.Z).Length()
		if math.Abs(off-w) > 1e-9 {
			t.Errorf("%s offset = %.3f, want %.3f", fam[i].Name, off, w)
		}
	}
}

func TestIonicBondIsDashed(t *testing.T) {
	b := newBuilder(t)
	m, err := b.BuildMolecule(element(t, "Na"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Root.Find("bond-0").Style != scene.Dashed {
		t.Error("ionic bond should be dashed")
	}
}

func TestBuildMolecule_BadBondIndex(t *testing.T) {
	radius := 100.0
	tables := &modeldata.Tables{
		Colors: modeldata.ColorTable{Default: "#CCCCCC"},
		Radii:  modeldata.RadiusTable{Default: &radius},
		Molecules: modeldata.MoleculeTable{
			Default: &modeldata.MoleculeDescriptor{
				Name:  "broken",
				Atoms: []modeldata.AtomSpec{{Symbol: modeldata.Placeholder}},
				Bonds: []modeldata.BondSpec{{From: 0, To: 5}},
			},
		},
	}
	r, err := modeldata.NewResolver(tables, 4)
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(r, DefaultOptions()).BuildMolecule(element(t, "Fe"))
	if !errors.Is(err, modeldata.ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity, got %v", err)
	}

	b := newBuilder(t)
	_, err = b.moleculeTree(modeldata.MoleculeDescriptor{
		Atoms: []modeldata.AtomSpec{{Symbol: "H"}, {Symbol: "H"}},
		Bonds: []modeldata.BondSpec{{From: -1, To: 1}},
	}, "test")
	if !errors.Is(err, modeldata.ErrDataIntegrity) {
		t.Errorf("expected ErrDataIntegrity, got %v", err)
	}
}

func TestLattices(t *testing.T) {
	tests := []struct {
		lattice modeldata.Lattice
		sites   int
		bonds   int
	}{
		{modeldata.SimpleCubic, 8, 12},
		{modeldata.FaceCenteredCubic, 20, 0},
		{modeldata.BodyCenteredCubic, 9, 8},
		{modeldata.HexagonalClosePacked, 9, 9},
		{modeldata.DiamondCubic, 8, 12},
		{modeldata.Lattice("rhombohedral"), 8, 12},
	}

	b := newBuilder(t)
	for _, tt := range tests {
		t.Run(string(tt.lattice), func(t *testing.T) {
			root := b.crystalTree(modeldata.CrystalDescriptor{
				Name:    "test",
				Lattice: tt.lattice,
				Sites:   []modeldata.AtomPair{{Symbol: "A", Color: "#111111"}, {Symbol: "B", Color: "#222222"}},
			})
			if got := root.Count(scene.KindSphere); got != tt.sites {
				t.Errorf("sites = %d, want %d", got, tt.sites)
			}
			if got := root.Count(scene.KindCylinder); got != tt.bonds {
				t.Errorf("bonds = %d, want %d", got, tt.bonds)
			}
			if got := root.Count(scene.KindWireframe); got != 1 {
				t.Errorf("wireframes = %d, want 1", got)
			}
			root.Walk(func(n *scene.Node) {
				if n.Kind == scene.KindSphere && n.Radius != 0.2 {
					t.Errorf("site radius = %v, want 0.2", n.Radius)
				}
			})
		})
	}
}

func TestBodyCenteredBondsReachCorners(t *testing.T) {
	l := bodyCentered(2)
	centre := l.positions[8]
	for _, pair := range l.bonds {
		d := l.positions[pair[1]].Sub(centre).Length()
		if math.Abs(d-math.Sqrt(3)) > 1e-9 {
			t.Errorf("bond length %v, want sqrt(3)", d)
		}
	}
}

func TestHexagonalLayers(t *testing.T) {
	l := hexagonalClosePacked(2)
	h := 2 * math.Sqrt(8.0/3.0)
	for i, p := range l.positions {
		layer := i / 3
		if math.Abs(p.Y-float64(layer)*h/3) > 1e-9 {
			t.Errorf("site %d at height %v", i, p.Y)
		}
		if l.site[i] != layer%2 {
			t.Errorf("site %d colour index %d", i, l.site[i])
		}
	}
	if !l.positions[3].ApproxEqual(scene.V(1, h/3, math.Sqrt(3)/3), 1e-9) {
		t.Errorf("middle layer not on the centroid: %+v", l.positions[3])
	}
}

func TestCarbonCrystalIsDiamond(t *testing.T) {
	b := newBuilder(t)
	m, err := b.Build(element(t, "C"), ModeCrystal)
	if err != nil {
		t.Fatal(err)
	}
	if m.Title != "Diamond (Carbon) Crystal" {
		t.Errorf("title %q", m.Title)
	}
	if m.Root.Count(scene.KindWireframe) != 1 || m.Root.Count(scene.KindSphere) != 8 || m.Root.Count(scene.KindCylinder) != 12 {
		t.Errorf("unexpected diamond scene: %d wireframes, %d sites, %d bonds",
			m.Root.Count(scene.KindWireframe), m.Root.Count(scene.KindSphere), m.Root.Count(scene.KindCylinder))
	}
	if m.Root.Find("site-4-C").Color != "#505050" {
		t.Error("tetrahedral sites should use the second colour")
	}
}

func TestDefaultCrystalUsesSymbol(t *testing.T) {
	b := newBuilder(t)
	m, err := b.BuildCrystal(element(t, "Og"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Root.Find("site-0-Og") == nil {
		t.Error("placeholder not substituted")
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"atom":     ModeAtom,
		"Molecule": ModeMolecule,
		"crystal":  ModeCrystal,
		"orbital":  ModeAtom,
		"":         ModeAtom,
	}
	for in, want := range tests {
		if got := ParseMode(in); got != want {
			t.Errorf("ParseMode(%q) = %s, want %s", in, got, want)
		}
	}
}
