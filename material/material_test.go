package material

import (
	"math"
	"testing"
)

func TestPropertyTableInvariants(t *testing.T) {
	for _, typ := range All() {
		p := typ.Props()
		if p.Name == "" {
			t.Errorf("material %d has no name", typ)
		}
		if p.Weight <= 0 {
			t.Errorf("%s: weight must be positive, got %f", typ, p.Weight)
		}
		if p.Fluid && !p.Movable {
			t.Errorf("%s: fluids must be movable", typ)
		}
		if !p.Movable && p.Behavior != Static {
			t.Errorf("%s: immovable material has a movement rule", typ)
		}
		if p.Movable && p.Behavior == Static {
			t.Errorf("%s: movable material has no movement rule", typ)
		}
	}
	for _, typ := range []Type{Border, Stone} {
		if !math.IsInf(typ.Weight(), 1) {
			t.Errorf("%s: static weight should be +Inf, got %f", typ, typ.Weight())
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"sand", Sand, false},
		{"  Water ", Water, false},
		{"OIL", Oil, false},
		{"empty", Empty, false},
		{"lava", Empty, true},
	}
	for _, tc := range tests {
		got, err := ParseType(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseType(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseType(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestPlaceableExcludesBorder(t *testing.T) {
	for _, typ := range Placeable() {
		if typ == Border {
			t.Fatal("border must not be placeable")
		}
	}
	if len(Placeable()) != len(All())-1 {
		t.Errorf("expected %d placeable materials, got %d", len(All())-1, len(Placeable()))
	}
}

func TestTextRoundTrip(t *testing.T) {
	var typ Type
	if err := typ.UnmarshalText([]byte("gravel")); err != nil || typ != Gravel {
		t.Fatalf("UnmarshalText(gravel) = %s, %v", typ, err)
	}
	text, _ := Gravel.MarshalText()
	if string(text) != "gravel" {
		t.Errorf("MarshalText = %q", text)
	}
	if Type(200).String() != "material(200)" {
		t.Errorf("unexpected String for out-of-range type: %s", Type(200))
	}
}
