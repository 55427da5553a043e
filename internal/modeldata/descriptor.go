package modeldata

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Placeholder marks atoms in default descriptors that take the symbol of the
// requesting element.
const Placeholder = "X"

type AtomSpec struct {
	Symbol   string     `yaml:"symbol"`
	Position [3]float64 `yaml:"pos"`
}

// BondSpec joins Atoms[From] and Atoms[To]. Order 0 in the data means 1.
type BondSpec struct {
	From  int  `yaml:"from"`
	To    int  `yaml:"to"`
	Order int  `yaml:"order,omitempty"`
	Ionic bool `yaml:"ionic,omitempty"`
}

// BondOrder is Order with the implicit single bond filled in.
func (b BondSpec) BondOrder() int {
	if b.Order <= 0 {
		return 1
	}
	return b.Order
}

type MoleculeDescriptor struct {
	Name  string     `yaml:"name"`
	Atoms []AtomSpec `yaml:"atoms"`
	Bonds []BondSpec `yaml:"bonds,omitempty"`
}

func (d MoleculeDescriptor) Clone() MoleculeDescriptor {
	out := MoleculeDescriptor{Name: d.Name}
	if d.Atoms != nil {
		out.Atoms = append([]AtomSpec(nil), d.Atoms...)
	}
	if d.Bonds != nil {
		out.Bonds = append([]BondSpec(nil), d.Bonds...)
	}
	return out
}

func (d MoleculeDescriptor) withSymbol(symbol string) MoleculeDescriptor {
	out := d.Clone()
	for i := range out.Atoms {
		if out.Atoms[i].Symbol == Placeholder {
			out.Atoms[i].Symbol = symbol
		}
	}
	return out
}

// Validate checks that every bond references atoms in range.
func (d MoleculeDescriptor) Validate(key string) error {
	if len(d.Atoms) == 0 {
		return integrity("molecules", key, "no atoms")
	}
	for i, b := range d.Bonds {
		if b.From < 0 || b.From >= len(d.Atoms) || b.To < 0 || b.To >= len(d.Atoms) {
			return integrity("molecules", key, "bond %d (%d-%d) outside %d atoms", i, b.From, b.To, len(d.Atoms))
		}
		if b.From == b.To {
			return integrity("molecules", key, "bond %d joins atom %d to itself", i, b.From)
		}
		if b.Order < 0 {
			return integrity("molecules", key, "bond %d has order %d", i, b.Order)
		}
	}
	return nil
}

type Lattice string

const (
	SimpleCubic          Lattice = "simple-cubic"
	FaceCenteredCubic    Lattice = "face-centered-cubic"
	BodyCenteredCubic    Lattice = "body-centered-cubic"
	HexagonalClosePacked Lattice = "hexagonal-close-packed"
	DiamondCubic         Lattice = "diamond-cubic"
)

var Lattices = []Lattice{SimpleCubic, FaceCenteredCubic, BodyCenteredCubic, HexagonalClosePacked, DiamondCubic}

// ParseLattice accepts the long names and the usual abbreviations. Anything
// else is drawn as simple cubic.
func ParseLattice(s string) Lattice {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fcc", string(FaceCenteredCubic):
		return FaceCenteredCubic
	case "bcc", string(BodyCenteredCubic):
		return BodyCenteredCubic
	case "hcp", string(HexagonalClosePacked):
		return HexagonalClosePacked
	case "diamond", string(DiamondCubic):
		return DiamondCubic
	default:
		return SimpleCubic
	}
}

func (l *Lattice) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*l = ParseLattice(s)
	return nil
}

type AtomPair struct {
	Symbol string `yaml:"symbol"`
	Color  string `yaml:"color"`
}

// CrystalDescriptor lists one or two sites. A single-site lattice reuses the
// first site for the second.
type CrystalDescriptor struct {
	Name    string     `yaml:"name"`
	Lattice Lattice    `yaml:"lattice"`
	Sites   []AtomPair `yaml:"sites"`
}

func (d CrystalDescriptor) Clone() CrystalDescriptor {
	out := d
	if d.Sites != nil {
		out.Sites = append([]AtomPair(nil), d.Sites...)
	}
	return out
}

// Site returns site i, repeating the first site when only one is defined.
func (d CrystalDescriptor) Site(i int) AtomPair {
	if i < len(d.Sites) {
		return d.Sites[i]
	}
	return d.Sites[0]
}

func (d CrystalDescriptor) withSymbol(symbol string) CrystalDescriptor {
	out := d.Clone()
	for i := range out.Sites {
		if out.Sites[i].Symbol == Placeholder {
			out.Sites[i].Symbol = symbol
		}
	}
	return out
}

func (d CrystalDescriptor) Validate(key string) error {
	if n := len(d.Sites); n < 1 || n > 2 {
		return integrity("crystals", key, "%d sites, want 1 or 2", n)
	}
	return nil
}

// WithSubstitutedSymbol returns a deep copy of d with every placeholder atom
// renamed to symbol. d itself is never modified.
func WithSubstitutedSymbol[D interface{ withSymbol(string) D }](d D, symbol string) D {
	return d.withSymbol(symbol)
}
