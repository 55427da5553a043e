package chem

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

type Property string

const (
	Electronegativity Property = "electronegativity"
	AtomicRadius      Property = "atomic-radius"
	IonizationEnergy  Property = "ionization-energy"
	MeltingPoint      Property = "melting-point"
	BoilingPoint      Property = "boiling-point"
)

// Properties lists the numeric properties in display order.
var Properties = []Property{Electronegativity, AtomicRadius, IonizationEnergy, MeltingPoint, BoilingPoint}

type propertyInfo struct {
	label  string
	unit   string
	barMax float64
	digits int
	get    func(Element) *float64
}

var propertyTable = map[Property]propertyInfo{
	Electronegativity: {"Electronegativity", "", 4.0, 2, func(e Element) *float64 { return e.Electronegativity }},
	AtomicRadius:      {"Atomic Radius", "pm", 300, 0, func(e Element) *float64 { return e.AtomicRadius }},
	IonizationEnergy:  {"Ionization Energy", "eV", 25, 2, func(e Element) *float64 { return e.IonizationEnergy }},
	MeltingPoint:      {"Melting Point", "°C", 3500, 2, func(e Element) *float64 { return e.MeltingPoint }},
	BoilingPoint:      {"Boiling Point", "°C", 5500, 2, func(e Element) *float64 { return e.BoilingPoint }},
}

// ParseProperty accepts the canonical names plus a few short aliases.
func ParseProperty(s string) (Property, error) {
	switch s {
	case "en", "electronegativity":
		return Electronegativity, nil
	case "radius", "atomic-radius":
		return AtomicRadius, nil
	case "ie", "ionization", "ionization-energy":
		return IonizationEnergy, nil
	case "mp", "melting", "melting-point":
		return MeltingPoint, nil
	case "bp", "boiling", "boiling-point":
		return BoilingPoint, nil
	}
	return "", fmt.Errorf("unknown property: %s", s)
}

func (p Property) Label() string { return propertyTable[p].label }
func (p Property) Unit() string  { return propertyTable[p].unit }

// BarMax is the fixed full-scale value used by the property bar chart.
func (p Property) BarMax() float64 { return propertyTable[p].barMax }

// Value reports the property for e; ok is false when it is unknown.
func (p Property) Value(e Element) (float64, bool) {
	info, found := propertyTable[p]
	if !found {
		return 0, false
	}
	v := info.get(e)
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Format renders the value with its unit, or "N/A".
func (p Property) Format(e Element) string {
	v, ok := p.Value(e)
	if !ok {
		return "N/A"
	}
	s := strconv.FormatFloat(v, 'f', propertyTable[p].digits, 64)
	if u := p.Unit(); u != "" {
		s += " " + u
	}
	return s
}

// Fraction is the bar-chart fill for e, clamped to [0, 1].
func (p Property) Fraction(e Element) (float64, bool) {
	v, ok := p.Value(e)
	if !ok {
		return 0, false
	}
	return math.Max(0, math.Min(1, v/p.BarMax())), true
}

// PropertyRange returns the smallest and largest known value of p. ok is
// false when no element has a value.
func (c *Catalog) PropertyRange(p Property) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, e := range c.elements {
		v, known := p.Value(e)
		if !known {
			continue
		}
		lo, hi, ok = math.Min(lo, v), math.Max(hi, v), true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// Series returns the property for every element; unknown values are NaN.
func (c *Catalog) Series(p Property) []float64 {
	out := make([]float64, len(c.elements))
	for i, e := range c.elements {
		if v, ok := p.Value(e); ok {
			out[i] = v
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// NeutralColor is used for elements whose property value is unknown.
const NeutralColor = "#e0e0e0"

var gradientStops = [3]colorful.Color{
	mustHex("#286ee6"),
	mustHex("#87c887"),
	mustHex("#e66e28"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("chem: bad gradient stop %q: %v", s, err))
	}
	return c
}

// Gradient maps v within [lo, hi] onto a blue-green-red ramp blended in Lab
// space, as a hex colour.
func Gradient(v, lo, hi float64) string {
	t := 0.5
	if hi > lo {
		t = math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
	}
	from, to := gradientStops[0], gradientStops[1]
	if t > 0.5 {
		from, to = gradientStops[1], gradientStops[2]
		t -= 0.5
	}
	return from.BlendLab(to, 2*t).Clamped().Hex()
}

// GradientFor colours e for the given property using the catalog range.
func (c *Catalog) GradientFor(p Property, e Element) string {
	v, ok := p.Value(e)
	if !ok {
		return NeutralColor
	}
	lo, hi, _ := c.PropertyRange(p)
	return Gradient(v, lo, hi)
}
