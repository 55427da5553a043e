package chem

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/elements.yaml
var elementsYAML []byte

// MaxNumber is the highest atomic number in the table.
const MaxNumber = 118

var (
	ErrUnknownElement = errors.New("chem: unknown element")
	ErrInvalidCatalog = errors.New("chem: invalid element catalog")
)

type Catalog struct {
	elements []Element
	bySymbol map[string]int
	byName   map[string]int
}

// Load decodes the embedded table.
func Load() (*Catalog, error) {
	return Parse(elementsYAML)
}

// MustLoad is Load for package-level initialisation; the embedded table is
// checked by tests so a failure here is a build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a YAML element table.
func Parse(data []byte) (*Catalog, error) {
	var elements []Element
	if err := yaml.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(elements)
}

// New validates elements and builds the lookup indexes. Elements must be
// ordered by atomic number starting at 1 with no gaps.
func New(elements []Element) (*Catalog, error) {
	c := &Catalog{
		elements: elements,
		bySymbol: make(map[string]int, len(elements)),
		byName:   make(map[string]int, len(elements)),
	}
	for i, e := range elements {
		if e.Number != i+1 {
			return nil, fmt.Errorf("%w: entry %d has atomic number %d", ErrInvalidCatalog, i, e.Number)
		}
		if e.Symbol == "" || e.Name == "" {
			return nil, fmt.Errorf("%w: element %d missing symbol or name", ErrInvalidCatalog, e.Number)
		}
		if got := e.Electrons(); got != e.Number {
			return nil, fmt.Errorf("%w: %s shells hold %d electrons, want %d", ErrInvalidCatalog, e.Symbol, got, e.Number)
		}
		key := strings.ToLower(e.Symbol)
		if _, dup := c.bySymbol[key]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %s", ErrInvalidCatalog, e.Symbol)
		}
		c.bySymbol[key] = i
		c.byName[strings.ToLower(e.Name)] = i
	}
	return c, nil
}

func (c *Catalog) Len() int { return len(c.elements) }

// All returns the elements ordered by atomic number. The slice is a copy.
func (c *Catalog) All() []Element {
	out := make([]Element, len(c.elements))
	copy(out, c.elements)
	return out
}

func (c *Catalog) ByNumber(n int) (Element, error) {
	if n < 1 || n > len(c.elements) {
		return Element{}, fmt.Errorf("%w: atomic number %d", ErrUnknownElement, n)
	}
	return c.elements[n-1], nil
}

func (c *Catalog) BySymbol(symbol string) (Element, error) {
	i, ok := c.bySymbol[strings.ToLower(strings.TrimSpace(symbol))]
	if !ok {
		return Element{}, fmt.Errorf("%w: symbol %q", ErrUnknownElement, symbol)
	}
	return c.elements[i], nil
}

// Find resolves a user reference: an atomic number, a symbol or a full name.
func (c *Catalog) Find(ref string) (Element, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		return c.ByNumber(n)
	}
	if e, err := c.BySymbol(ref); err == nil {
		return e, nil
	}
	if i, ok := c.byName[strings.ToLower(ref)]; ok {
		return c.elements[i], nil
	}
	return Element{}, fmt.Errorf("%w: %q", ErrUnknownElement, ref)
}
