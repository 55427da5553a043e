package chem

import (
	"strings"
	"testing"
)

func TestDiagram(t *testing.T) {
	cat := MustLoad()
	tests := []struct {
		symbol   string
		kind     string
		orbitals int
		ok       bool
	}{
		{"C", "sp", 2, true},
		{"B", "sp²", 3, true},
		{"Si", "sp³", 4, true},
		{"Kr", "sp³d", 5, true},
		{"Xe", "sp³d", 5, true},
		{"He", "", 0, false},
		{"Na", "", 0, false},
		{"Pt", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			e, err := cat.BySymbol(tt.symbol)
			if err != nil {
				t.Fatal(err)
			}
			d, ok := Diagram(e)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if d.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", d.Kind, tt.kind)
			}
			if len(d.Orbitals) != tt.orbitals || len(d.Hybrids) != tt.orbitals {
				t.Errorf("orbitals %v hybrids %v, want %d each", d.Orbitals, d.Hybrids, tt.orbitals)
			}
			for _, h := range d.Hybrids {
				if h != tt.kind {
					t.Errorf("hybrid %q, want %q", h, tt.kind)
				}
			}
		})
	}
}

func TestDiagram_OctahedralSet(t *testing.T) {
	e := Element{Name: "Test", Hybridization: []string{"sp³d²"}}
	d, ok := Diagram(e)
	if !ok {
		t.Fatal("expected a diagram")
	}
	if got := d.String(); got != "s + p + p + p + d + d → sp³d² sp³d² sp³d² sp³d² sp³d² sp³d²" {
		t.Errorf("String() = %q", got)
	}
}

func TestHybridNote(t *testing.T) {
	tests := []struct {
		name string
		e    Element
		want string
	}{
		{"none", Element{Name: "Neon"}, "Neon typically doesn't form hybrid orbitals."},
		{"complex", Element{Name: "Platinum", Hybridization: []string{"dsp²"}}, "Platinum has complex hybridization patterns that vary by compound."},
		{"simple", Element{Name: "Carbon", Hybridization: []string{"sp", "sp²", "sp³"}}, "Carbon can participate in sp, sp², sp³ hybridization"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HybridNote(tt.e); !strings.HasPrefix(got, tt.want) {
				t.Errorf("HybridNote = %q, want prefix %q", got, tt.want)
			}
		})
	}
}
