package modeldata

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 128

// cacheKey pairs an element number with the symbol substituted into defaults.
type cacheKey struct {
	number int
	symbol string
}

// Resolver answers model lookups against a set of Tables. Results are cached
// per (number, symbol); every call returns a fresh deep copy.
type Resolver struct {
	tables    *Tables
	molecules *lru.Cache[cacheKey, MoleculeDescriptor]
	crystals  *lru.Cache[cacheKey, CrystalDescriptor]
}

func NewResolver(t *Tables, cacheSize int) (*Resolver, error) {
	if t == nil {
		return nil, integrity("models", "", "nil tables")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	mols, err := lru.New[cacheKey, MoleculeDescriptor](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("molecule cache: %w", err)
	}
	crys, err := lru.New[cacheKey, CrystalDescriptor](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("crystal cache: %w", err)
	}
	return &Resolver{tables: t, molecules: mols, crystals: crys}, nil
}

// ResolveMolecule returns the molecule shown for element number with the
// given symbol. Elements without an entry get the default with its
// placeholder atoms renamed to symbol.
func (r *Resolver) ResolveMolecule(number int, symbol string) (MoleculeDescriptor, error) {
	key := cacheKey{number, symbol}
	if d, ok := r.molecules.Get(key); ok {
		return d.Clone(), nil
	}
	d, ok := r.tables.Molecules.Elements[number]
	if !ok {
		if r.tables.Molecules.Default == nil {
			return MoleculeDescriptor{}, integrity("molecules", "default", "missing default")
		}
		d = WithSubstitutedSymbol(*r.tables.Molecules.Default, symbol)
	} else {
		d = d.Clone()
	}
	if err := d.Validate(fmt.Sprint(number)); err != nil {
		return MoleculeDescriptor{}, err
	}
	r.molecules.Add(key, d)
	return d.Clone(), nil
}

// ResolveCrystal is ResolveMolecule for crystal lattices.
func (r *Resolver) ResolveCrystal(number int, symbol string) (CrystalDescriptor, error) {
	key := cacheKey{number, symbol}
	if d, ok := r.crystals.Get(key); ok {
		return d.Clone(), nil
	}
	d, ok := r.tables.Crystals.Elements[number]
	if !ok {
		if r.tables.Crystals.Default == nil {
			return CrystalDescriptor{}, integrity("crystals", "default", "missing default")
		}
		d = WithSubstitutedSymbol(*r.tables.Crystals.Default, symbol)
	} else {
		d = d.Clone()
	}
	if err := d.Validate(fmt.Sprint(number)); err != nil {
		return CrystalDescriptor{}, err
	}
	r.crystals.Add(key, d)
	return d.Clone(), nil
}

// ResolveColor returns the hex display colour for symbol.
func (r *Resolver) ResolveColor(symbol string) (string, error) {
	if c, ok := r.tables.Colors.Symbols[symbol]; ok {
		return c, nil
	}
	if r.tables.Colors.Default == "" {
		return "", integrity("colors", "default", "missing default")
	}
	return r.tables.Colors.Default, nil
}

// ResolveRadius returns the display radius of symbol in picometres.
func (r *Resolver) ResolveRadius(symbol string) (float64, error) {
	if v, ok := r.tables.Radii.Symbols[symbol]; ok {
		return v, nil
	}
	if r.tables.Radii.Default == nil {
		return 0, integrity("radii", "default", "missing default")
	}
	return *r.tables.Radii.Default, nil
}

// Purge drops every cached descriptor.
func (r *Resolver) Purge() {
	r.molecules.Purge()
	r.crystals.Purge()
}
