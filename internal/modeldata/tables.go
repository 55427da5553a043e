package modeldata

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed data/models.yaml
var modelsYAML []byte

type ColorTable struct {
	Default string            `yaml:"default"`
	Symbols map[string]string `yaml:"symbols"`
}

// RadiusTable holds display radii in picometres.
type RadiusTable struct {
	Default *float64           `yaml:"default"`
	Symbols map[string]float64 `yaml:"symbols"`
}

type MoleculeTable struct {
	Default  *MoleculeDescriptor        `yaml:"default"`
	Elements map[int]MoleculeDescriptor `yaml:"elements"`
}

type CrystalTable struct {
	Default  *CrystalDescriptor        `yaml:"default"`
	Elements map[int]CrystalDescriptor `yaml:"elements"`
}

// Tables is the full model data set. It is read-only once handed to a
// Resolver.
type Tables struct {
	Colors    ColorTable    `yaml:"colors"`
	Radii     RadiusTable   `yaml:"radii"`
	Molecules MoleculeTable `yaml:"molecules"`
	Crystals  CrystalTable  `yaml:"crystals"`
}

// Load decodes and validates the embedded tables.
func Load() (*Tables, error) {
	return Parse(modelsYAML)
}

// LoadFile reads replacement tables from path.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model data: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, &IntegrityError{Table: "models", Reason: err.Error()}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks every table and joins all violations found.
func (t *Tables) Validate() error {
	var errs []error
	if t.Colors.Default == "" {
		errs = append(errs, integrity("colors", "", "missing default"))
	}
	if t.Radii.Default == nil {
		errs = append(errs, integrity("radii", "", "missing default"))
	}
	for sym, r := range t.Radii.Symbols {
		if r <= 0 {
			errs = append(errs, integrity("radii", sym, "non-positive radius %g", r))
		}
	}

	if t.Molecules.Default == nil {
		errs = append(errs, integrity("molecules", "", "missing default"))
	} else if err := t.Molecules.Default.Validate("default"); err != nil {
		errs = append(errs, err)
	}
	for n, d := range t.Molecules.Elements {
		if err := d.Validate(strconv.Itoa(n)); err != nil {
			errs = append(errs, err)
		}
	}

	if t.Crystals.Default == nil {
		errs = append(errs, integrity("crystals", "", "missing default"))
	} else if err := t.Crystals.Default.Validate("default"); err != nil {
		errs = append(errs, err)
	}
	for n, d := range t.Crystals.Elements {
		if err := d.Validate(strconv.Itoa(n)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
