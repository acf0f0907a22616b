package feature_test

import (
	"testing"

	"github.com/trknhr/cooktime/internal/catalog"
	"github.com/trknhr/cooktime/internal/feature"
)

func TestBuild_StewScenario(t *testing.T) {
	cat := catalog.Default()
	schema := feature.SchemaFor(cat)

	sel := feature.NewSelection(feature.Simmer)
	sel.Add("Chicken", 1)
	sel.Add("Carrots", 1)
	sel.Add("Potatoes", 1)

	v := feature.Build(sel, cat, schema)

	if v.TotalWeight() != 450 {
		t.Errorf("TotalWeight = %v, want 450", v.TotalWeight())
	}
	if v.IngredientCount() != 3 {
		t.Errorf("IngredientCount = %d, want 3", v.IngredientCount())
	}
	if v.Method() != 0 {
		t.Errorf("Method = %v, want 0", v.Method())
	}
	if w, _ := v.Get("Chicken"); w != 200 {
		t.Errorf("Chicken field = %v, want 200", w)
	}
}

func TestBuild_LengthIsConstant(t *testing.T) {
	cat := catalog.Default()
	schema := feature.SchemaFor(cat)
	want := cat.Len() + 3

	selections := []feature.Selection{
		feature.NewSelection(feature.Simmer),
		{Quantities: map[string]int{"Eggs": 4}, Method: feature.Fry},
		{Quantities: map[string]int{"Water": 2, "Peas": 1, "Quinoa": 3}, Method: feature.Boil},
	}

	for _, sel := range selections {
		v := feature.Build(sel, cat, schema)
		if v.Len() != want || len(v.Fields) != want {
			t.Errorf("vector length = %d/%d, want %d", v.Len(), len(v.Fields), want)
		}
	}
}

func TestBuild_Aggregates(t *testing.T) {
	cat := catalog.Default()
	schema := feature.SchemaFor(cat)

	sel := feature.Selection{
		Quantities: map[string]int{"Eggs": 3, "Milk": 2, "Onions": 1},
		Method:     feature.Fry,
	}
	v := feature.Build(sel, cat, schema)

	var want float64
	for name, qty := range sel.Quantities {
		want += cat.Weight(name) * float64(qty)
	}
	if v.TotalWeight() != want {
		t.Errorf("TotalWeight = %v, want %v", v.TotalWeight(), want)
	}
	if v.IngredientCount() != 3 {
		t.Errorf("IngredientCount = %d, want 3", v.IngredientCount())
	}
	if v.Method() != 2 {
		t.Errorf("Method = %v, want 2", v.Method())
	}
}

func TestBuild_UnknownIngredientContributesNothing(t *testing.T) {
	cat := catalog.Default()
	schema := feature.SchemaFor(cat)

	sel := feature.Selection{
		Quantities: map[string]int{"Quinoa": 1, "Carrots": 2},
		Method:     feature.Simmer,
	}
	v := feature.Build(sel, cat, schema)

	if v.TotalWeight() != 200 {
		t.Errorf("TotalWeight = %v, want 200", v.TotalWeight())
	}
	if v.IngredientCount() != 1 {
		t.Errorf("IngredientCount = %d, want 1", v.IngredientCount())
	}
}

// Unknown method tags are not a validation failure: they encode as Simmer.
func TestParseMethod_UnknownFallsBackToSimmer(t *testing.T) {
	tests := []struct {
		tag  string
		want feature.Method
		ok   bool
	}{
		{"Simmer", feature.Simmer, true},
		{"boil", feature.Boil, true},
		{" FRY ", feature.Fry, true},
		{"Roast", feature.Simmer, false},
		{"", feature.Simmer, false},
	}
	for _, tt := range tests {
		got, ok := feature.ParseMethod(tt.tag)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMethod(%q) = %v,%v want %v,%v", tt.tag, got, ok, tt.want, tt.ok)
		}
	}

	cat := catalog.Default()
	sel := feature.Selection{Quantities: map[string]int{"Fish": 1}, Method: feature.Method(42)}
	v := feature.Build(sel, cat, feature.SchemaFor(cat))
	if v.Method() != 0 {
		t.Errorf("out-of-range method encoded as %v, want 0", v.Method())
	}
}

func TestBuild_DoesNotMutateInputs(t *testing.T) {
	cat := catalog.Default()
	sel := feature.Selection{Quantities: map[string]int{"Tofu": 2}, Method: feature.Boil}
	before := sel.Clone()

	feature.Build(sel, cat, feature.SchemaFor(cat))

	if len(sel.Quantities) != len(before.Quantities) || sel.Quantities["Tofu"] != 2 {
		t.Errorf("selection mutated: %+v", sel)
	}
	if cat.Weight("Tofu") != 200 {
		t.Errorf("catalog mutated")
	}
}

func TestSchema_FieldOrder(t *testing.T) {
	schema := feature.NewSchema([]string{"B", "A"})
	fields := schema.Fields()
	want := []string{"B", "A", "Method", "TotalWeight", "IngredientCount"}

	if len(fields) != len(want) {
		t.Fatalf("fields = %v", fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("fields[%d] = %q, want %q", i, fields[i], want[i])
		}
	}
}

func TestSelection_AddRejectsNonPositive(t *testing.T) {
	sel := feature.NewSelection(feature.Simmer)
	if err := sel.Add("Chicken", 0); err == nil {
		t.Errorf("expected error for zero quantity")
	}
	if err := sel.Add("Chicken", -1); err == nil {
		t.Errorf("expected error for negative quantity")
	}
	if err := sel.Add("Chicken", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sel.Remove("Chicken") || !sel.IsEmpty() {
		t.Errorf("remove failed: %+v", sel)
	}
}

func TestSelection_IsEmptyIgnoresNonPositive(t *testing.T) {
	tests := []struct {
		name string
		qty  map[string]int
		want bool
	}{
		{"nil map", nil, true},
		{"zero only", map[string]int{"Chicken": 0}, true},
		{"negative only", map[string]int{"Chicken": -2, "Peas": 0}, true},
		{"one positive", map[string]int{"Chicken": 0, "Peas": 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := feature.Selection{Quantities: tt.qty}
			if got := sel.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMethod_UnmarshalTextIsStrict(t *testing.T) {
	var m feature.Method
	if err := m.UnmarshalText([]byte("boil")); err != nil || m != feature.Boil {
		t.Errorf("UnmarshalText(boil) = %v, %v", m, err)
	}
	if err := m.UnmarshalText([]byte("Simer")); err == nil {
		t.Errorf("expected error for misspelled method")
	}
	if m != feature.Boil {
		t.Errorf("failed decode changed method to %v", m)
	}
}
