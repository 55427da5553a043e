package chem

import (
	"strings"

	"gopkg.in/yaml.v3"
)

type Category string

const (
	AlkaliMetal     Category = "alkali-metal"
	AlkalineEarth   Category = "alkaline-earth"
	TransitionMetal Category = "transition-metal"
	PostTransition  Category = "post-transition"
	Metalloid       Category = "metalloid"
	Nonmetal        Category = "nonmetal"
	Halogen         Category = "halogen"
	NobleGas        Category = "noble-gas"
	Lanthanide      Category = "lanthanide"
	Actinide        Category = "actinide"
	Unknown         Category = "unknown"
)

// Categories lists every category in legend order.
var Categories = []Category{
	AlkaliMetal, AlkalineEarth, TransitionMetal, PostTransition, Metalloid,
	Nonmetal, Halogen, NobleGas, Lanthanide, Actinide, Unknown,
}

// ParseCategory maps a label to a Category. Unrecognised labels are Unknown.
func ParseCategory(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return Unknown
}

func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*c = ParseCategory(s)
	return nil
}

// Label is the human form, e.g. "Alkali Metal".
func (c Category) Label() string {
	words := strings.Split(string(c), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Element is a single row of the reference table. Optional properties are nil
// when the value is unknown or not applicable; nil is never zero.
type Element struct {
	Number            int      `yaml:"number"`
	Symbol            string   `yaml:"symbol"`
	Name              string   `yaml:"name"`
	Mass              float64  `yaml:"mass"`
	Category          Category `yaml:"category"`
	Shells            []int    `yaml:"shells"`
	Config            string   `yaml:"config"`
	Electronegativity *float64 `yaml:"en,omitempty"`
	AtomicRadius      *float64 `yaml:"radius,omitempty"`
	IonizationEnergy  *float64 `yaml:"ie,omitempty"`
	MeltingPoint      *float64 `yaml:"mp,omitempty"`
	BoilingPoint      *float64 `yaml:"bp,omitempty"`
	Hybridization     []string `yaml:"hybridization,omitempty"`
}

func (e Element) Electrons() int {
	n := 0
	for _, c := range e.Shells {
		n += c
	}
	return n
}

func (e Element) Period() int { return len(e.Shells) }

func (e Element) String() string { return e.Name + " (" + e.Symbol + ")" }

var categoryColors = map[Category]string{
	AlkaliMetal:     "#ff6666",
	AlkalineEarth:   "#ffdead",
	TransitionMetal: "#ffc0c0",
	PostTransition:  "#cccccc",
	Metalloid:       "#cccc99",
	Nonmetal:        "#a0ffa0",
	Halogen:         "#ffff99",
	NobleGas:        "#c0ffff",
	Lanthanide:      "#ffbfff",
	Actinide:        "#ff99cc",
	Unknown:         "#e8e8e8",
}

// Color is the legend colour of the category as "#rrggbb".
func (c Category) Color() string {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return categoryColors[Unknown]
}
