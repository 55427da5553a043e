package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/periodix/internal/build"
)

const (
	DefaultTheme         = "cyberpunk"
	DefaultFPS           = 30
	DefaultRotationSpeed = 0.3
	DefaultPlacement     = "round-robin"
)

type Config struct {
	Theme         string         `yaml:"theme"`
	FPS           int            `yaml:"fps"`
	Rotate        bool           `yaml:"rotate"`
	RotationSpeed float64        `yaml:"rotation_speed"`
	Placement     string         `yaml:"placement"`
	Seed          int64          `yaml:"seed"`
	ModelsFile    string         `yaml:"models_file,omitempty"`
	Geometry      GeometryConfig `yaml:"geometry"`
}

type GeometryConfig struct {
	CellSize       float64 `yaml:"cell_size"`
	BaseRadius     float64 `yaml:"base_radius"`
	ShellSpacing   float64 `yaml:"shell_spacing"`
	MoleculeScale  float64 `yaml:"molecule_scale"`
	BondOffset     float64 `yaml:"bond_offset"`
	BondRadius     float64 `yaml:"bond_radius"`
	NucleusRadius  float64 `yaml:"nucleus_radius"`
	ElectronRadius float64 `yaml:"electron_radius"`
}

func DefaultConfig() *Config {
	o := build.DefaultOptions()
	return &Config{
		Theme:         DefaultTheme,
		FPS:           DefaultFPS,
		Rotate:        true,
		RotationSpeed: DefaultRotationSpeed,
		Placement:     DefaultPlacement,
		Geometry: GeometryConfig{
			CellSize:       o.CellSize,
			BaseRadius:     o.BaseRadius,
			ShellSpacing:   o.ShellSpacing,
			MoleculeScale:  o.MoleculeScale,
			BondOffset:     o.BondOffset,
			BondRadius:     o.BondRadius,
			NucleusRadius:  o.NucleusRadius,
			ElectronRadius: o.ElectronRadius,
		},
	}
}

// DefaultPath is config.yaml under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "periodix.yaml"
	}
	return filepath.Join(dir, "periodix", "config.yaml")
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields DefaultConfig.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options converts the geometry and placement settings for the builder.
// Random placement with a zero seed is seeded from the clock.
func (c *Config) Options() build.Options {
	g := c.Geometry
	o := build.Options{
		CellSize:       g.CellSize,
		BaseRadius:     g.BaseRadius,
		ShellSpacing:   g.ShellSpacing,
		MoleculeScale:  g.MoleculeScale,
		BondOffset:     g.BondOffset,
		BondRadius:     g.BondRadius,
		NucleusRadius:  g.NucleusRadius,
		ElectronRadius: g.ElectronRadius,
		Placement:      build.RoundRobinPlacement{},
	}
	if c.Placement == "random" {
		seed := c.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		o.Placement = build.RandomPlacement(seed)
	}
	return o
}

// FrameInterval is the tick period for the configured frame rate.
func (c *Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
