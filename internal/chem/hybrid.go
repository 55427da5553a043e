package chem

import (
	"fmt"
	"slices"
	"strings"
)

// HybridDiagram shows atomic orbitals mixing into a set of hybrid orbitals.
type HybridDiagram struct {
	Kind     string
	Orbitals []string
	Hybrids  []string
}

func (d HybridDiagram) String() string {
	return strings.Join(d.Orbitals, " + ") + " → " + strings.Join(d.Hybrids, " ")
}

// hybridSets is ordered by precedence: an element forming several sets is
// drawn with the first one it has.
var hybridSets = []struct {
	kind     string
	orbitals []string
}{
	{"sp", []string{"s", "p"}},
	{"sp²", []string{"s", "p", "p"}},
	{"sp³", []string{"s", "p", "p", "p"}},
	{"sp³d", []string{"s", "p", "p", "p", "d"}},
	{"sp³d²", []string{"s", "p", "p", "p", "d", "d"}},
}

// Diagram returns the hybridization diagram drawn for e. It reports false
// when e forms no hybrid orbitals or only sets outside sp..sp³d².
func Diagram(e Element) (HybridDiagram, bool) {
	for _, set := range hybridSets {
		if !slices.Contains(e.Hybridization, set.kind) {
			continue
		}
		hybrids := make([]string, len(set.orbitals))
		for i := range hybrids {
			hybrids[i] = set.kind
		}
		return HybridDiagram{
			Kind:     set.kind,
			Orbitals: slices.Clone(set.orbitals),
			Hybrids:  hybrids,
		}, true
	}
	return HybridDiagram{}, false
}

// HybridNote is the one-line summary shown beside or instead of the diagram.
func HybridNote(e Element) string {
	if len(e.Hybridization) == 0 {
		return fmt.Sprintf("%s typically doesn't form hybrid orbitals.", e.Name)
	}
	if _, ok := Diagram(e); !ok {
		return fmt.Sprintf("%s has complex hybridization patterns that vary by compound.", e.Name)
	}
	return fmt.Sprintf("%s can participate in %s hybridization, depending on the compounds it forms.",
		e.Name, strings.Join(e.Hybridization, ", "))
}
