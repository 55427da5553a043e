package build

import "strings"

type Mode string

const (
	ModeAtom     Mode = "atom"
	ModeMolecule Mode = "molecule"
	ModeCrystal  Mode = "crystal"
)

var Modes = []Mode{ModeAtom, ModeMolecule, ModeCrystal}

// ParseMode maps s to a Mode. Unrecognised values show the atom.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeMolecule:
		return ModeMolecule
	case ModeCrystal:
		return ModeCrystal
	default:
		return ModeAtom
	}
}

// Options sizes the generated geometry. Distances are scene units.
type Options struct {
	CellSize       float64
	BaseRadius     float64
	ShellSpacing   float64
	MoleculeScale  float64
	BondOffset     float64
	BondRadius     float64
	NucleusRadius  float64
	ElectronRadius float64
	Placement      Placement
}

func DefaultOptions() Options {
	return Options{
		CellSize:       2,
		BaseRadius:     1,
		ShellSpacing:   0.8,
		MoleculeScale:  1.5,
		BondOffset:     0.08,
		BondRadius:     0.05,
		NucleusRadius:  0.5,
		ElectronRadius: 0.1,
		Placement:      RoundRobinPlacement{},
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&o.CellSize, d.CellSize)
	fill(&o.BaseRadius, d.BaseRadius)
	fill(&o.ShellSpacing, d.ShellSpacing)
	fill(&o.MoleculeScale, d.MoleculeScale)
	fill(&o.BondOffset, d.BondOffset)
	fill(&o.BondRadius, d.BondRadius)
	fill(&o.NucleusRadius, d.NucleusRadius)
	fill(&o.ElectronRadius, d.ElectronRadius)
	if o.Placement == nil {
		o.Placement = d.Placement
	}
	return o
}

// Display colours.
const (
	NucleusColor    = "#F44336"
	ShellColor      = "#2196F3"
	ElectronColor   = "#2196F3"
	BondColor       = "#CCCCCC"
	LabelColor      = "#FFFFFF"
	CellEdgeColor   = "#666666"
	BackgroundColor = "#121A2B"
)
