package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"compact": {
		Theme: "minimal", FPS: 20, Rotate: true, RotationSpeed: 0.2, Placement: "round-robin",
		Geometry: GeometryConfig{
			CellSize: 1.5, BaseRadius: 0.8, ShellSpacing: 0.5, MoleculeScale: 1.2,
			BondOffset: 0.06, BondRadius: 0.04, NucleusRadius: 0.4, ElectronRadius: 0.08,
		},
	},
	"spacious": {
		Theme: "ocean", FPS: 30, Rotate: true, RotationSpeed: 0.4, Placement: "random", Seed: 1,
		Geometry: GeometryConfig{
			CellSize: 3, BaseRadius: 1.2, ShellSpacing: 1.1, MoleculeScale: 2,
			BondOffset: 0.12, BondRadius: 0.06, NucleusRadius: 0.6, ElectronRadius: 0.12,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
