package reactions

import (
	"errors"
	"testing"
)

func TestEmbeddedTableLoads(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Numbers()) == 0 {
		t.Fatal("expected reactions in the embedded table")
	}
}

func TestFor(t *testing.T) {
	c := MustLoad()
	tests := []struct {
		number    int
		wantFirst string
		empty     bool
	}{
		{1, "Combustion of Hydrogen", false},
		{6, "", false},
		{26, "", false},
		{92, "", false},
		{15, "", true},
		{118, "", true},
		{0, "", true},
	}
	for _, tt := range tests {
		rs := c.For(tt.number)
		if tt.empty {
			if rs != nil || c.Has(tt.number) {
				t.Errorf("element %d: expected no reactions, got %d", tt.number, len(rs))
			}
			continue
		}
		if len(rs) == 0 || !c.Has(tt.number) {
			t.Errorf("element %d: expected reactions", tt.number)
			continue
		}
		if tt.wantFirst != "" && rs[0].Name != tt.wantFirst {
			t.Errorf("element %d first reaction = %q, want %q", tt.number, rs[0].Name, tt.wantFirst)
		}
		for _, r := range rs {
			if r.Equation == "" || r.Type == "" {
				t.Errorf("element %d reaction %q incomplete", tt.number, r.Name)
			}
		}
	}
}

func TestForReturnsCopies(t *testing.T) {
	c := MustLoad()
	rs := c.For(1)
	rs[0].Name = "changed"
	rs[0].Conditions[0] = "changed"
	again := c.For(1)
	if again[0].Name == "changed" || again[0].Conditions[0] == "changed" {
		t.Error("For should not alias the catalog")
	}
}

func TestEmptyMessage(t *testing.T) {
	if got := EmptyMessage("Oganesson"); got != "No specific reactions available for Oganesson." {
		t.Errorf("EmptyMessage = %q", got)
	}
}

func TestTypesAndFilter(t *testing.T) {
	c := MustLoad()
	types := c.Types()
	for i, typ := range types {
		if typ == NoneType {
			t.Error("types should not include None")
		}
		if i > 0 && types[i-1] >= typ {
			t.Errorf("types not sorted: %q before %q", types[i-1], typ)
		}
	}
	combustion := Filter(c.For(1), "Combustion")
	if len(combustion) != 1 || combustion[0].Name != "Combustion of Hydrogen" {
		t.Errorf("Filter(Combustion) = %+v", combustion)
	}
	if got := Filter(c.For(1), ""); len(got) != len(c.For(1)) {
		t.Error("empty filter should keep every reaction")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "reactions: [1, 2"},
		{"out of range", "reactions:\n  200:\n    - {name: x, equation: y}\n"},
		{"missing equation", "reactions:\n  1:\n    - {name: x}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, ErrInvalidData) {
				t.Errorf("err = %v, want ErrInvalidData", err)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	toks := Tokenize("2H₂(g) + O₂(g) → 2H₂O(g)")
	want := []Token{
		{Species, "2H₂"}, {State, "(g)"}, {Species, " "}, {Plus, "+"}, {Species, " O₂"},
		{State, "(g)"}, {Species, " "}, {Arrow, "→"}, {Species, " 2H₂O"}, {State, "(g)"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens %+v, want %d", len(toks), toks, len(want))
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, toks[i], want[i])
		}
	}

	eq := Tokenize("CO(g) + H₂O(g) ⇌ CO₂(aq)")
	var arrows, states int
	for _, tok := range eq {
		switch tok.Kind {
		case Arrow:
			arrows++
		case State:
			states++
		}
	}
	if arrows != 1 || states != 3 {
		t.Errorf("arrows=%d states=%d, want 1 and 3", arrows, states)
	}
}
