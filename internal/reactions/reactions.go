// Package reactions holds the notable chemical reactions listed for each
// element, decoded from an embedded YAML table keyed by atomic number.
package reactions

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/periodix/internal/chem"
)

//go:embed data/reactions.yaml
var reactionsYAML []byte

// NoneType marks entries describing an element's lack of reactivity.
const NoneType = "None"

var ErrInvalidData = errors.New("reactions: invalid reaction data")

type Reaction struct {
	Name         string   `yaml:"name"`
	Equation     string   `yaml:"equation"`
	Description  string   `yaml:"description"`
	Conditions   []string `yaml:"conditions"`
	Applications string   `yaml:"applications"`
	Type         string   `yaml:"type"`
}

type Catalog struct {
	byNumber map[int][]Reaction
}

// Load decodes the embedded table.
func Load() (*Catalog, error) {
	return Parse(reactionsYAML)
}

// MustLoad panics if the embedded table is invalid.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Reactions map[int][]Reaction `yaml:"reactions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	c := &Catalog{byNumber: doc.Reactions}
	if c.byNumber == nil {
		c.byNumber = map[int][]Reaction{}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	var errs []error
	for n, rs := range c.byNumber {
		if n < 1 || n > chem.MaxNumber {
			errs = append(errs, fmt.Errorf("%w: atomic number %d out of range", ErrInvalidData, n))
		}
		for i, r := range rs {
			if r.Name == "" || r.Equation == "" {
				errs = append(errs, fmt.Errorf("%w: element %d reaction %d missing name or equation", ErrInvalidData, n, i))
			}
		}
	}
	return errors.Join(errs...)
}

// For returns the reactions listed for an element, or nil when there are
// none. The result is a copy.
func (c *Catalog) For(number int) []Reaction {
	rs := c.byNumber[number]
	if len(rs) == 0 {
		return nil
	}
	out := make([]Reaction, len(rs))
	for i, r := range rs {
		r.Conditions = slices.Clone(r.Conditions)
		out[i] = r
	}
	return out
}

func (c *Catalog) Has(number int) bool { return len(c.byNumber[number]) > 0 }

// Numbers returns the atomic numbers that have reactions, ascending.
func (c *Catalog) Numbers() []int {
	out := make([]int, 0, len(c.byNumber))
	for n, rs := range c.byNumber {
		if len(rs) > 0 {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// Types lists the distinct reaction types, sorted, without NoneType.
func (c *Catalog) Types() []string {
	seen := map[string]bool{}
	for _, rs := range c.byNumber {
		for _, r := range rs {
			if r.Type != "" && r.Type != NoneType {
				seen[r.Type] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Filter keeps the reactions of the given type. An empty type keeps all.
func Filter(rs []Reaction, typ string) []Reaction {
	if typ == "" {
		return rs
	}
	var out []Reaction
	for _, r := range rs {
		if r.Type == typ {
			out = append(out, r)
		}
	}
	return out
}

// EmptyMessage is shown for elements with no listed reactions.
func EmptyMessage(name string) string {
	return fmt.Sprintf("No specific reactions available for %s.", name)
}
