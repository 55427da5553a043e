package build

import (
	"fmt"

	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/modeldata"
	"github.com/san-kum/periodix/internal/scene"
)

// Model is one built visualization.
type Model struct {
	Mode        Mode
	Title       string
	Description string
	Root        *scene.Node
}

type Builder struct {
	resolver *modeldata.Resolver
	opts     Options
}

func New(r *modeldata.Resolver, opts Options) *Builder {
	return &Builder{resolver: r, opts: opts.withDefaults()}
}

func (b *Builder) Options() Options { return b.opts }

// Build dispatches on mode. Unknown modes were already mapped to the atom by
// ParseMode; anything else reaching here is drawn as an atom as well.
func (b *Builder) Build(e chem.Element, mode Mode) (*Model, error) {
	switch mode {
	case ModeMolecule:
		return b.BuildMolecule(e)
	case ModeCrystal:
		return b.BuildCrystal(e)
	default:
		return b.BuildAtom(e), nil
	}
}

func atomDescription(e chem.Element) string {
	return fmt.Sprintf("Atomic structure of %s (%s), with %d electrons distributed across %d energy levels. The nucleus contains %d protons.",
		e.Name, e.Symbol, e.Electrons(), len(e.Shells), e.Number)
}

func moleculeDescription(e chem.Element, name string) string {
	return fmt.Sprintf("%s, a common molecule containing %s, showing how its atoms are arranged and bonded.", name, e.Name)
}

func crystalDescription(e chem.Element, name string) string {
	return fmt.Sprintf("%s crystal structure: how %s atoms repeat in the solid state.", name, e.Name)
}

// bond returns a cylinder spanning from to to, oriented from its local +Y.
func bond(name string, from, to scene.Vec3, radius float64, style scene.Style) *scene.Node {
	dir := to.Sub(from)
	n := scene.NewCylinder(name, radius, dir.Length(), BondColor)
	n.Position = from.Lerp(to, 0.5)
	n.Rotation = scene.QuatFromUnitVectors(scene.UnitY, dir.Normalize())
	n.Style = style
	return n
}

// perpendicular returns a unit vector at right angles to dir, built from the
// X axis unless dir is nearly parallel to it.
func perpendicular(dir scene.Vec3) scene.Vec3 {
	ref := scene.UnitX
	if abs(dir.Normalize().Dot(ref)) > 0.9 {
		ref = scene.UnitY
	}
	return dir.Cross(ref).Normalize()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
