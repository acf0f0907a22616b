package dataset_test

import (
	"strings"
	"testing"

	"github.com/trknhr/cooktime/internal/catalog"
	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/model/dataset"
)

func TestBuiltin_MatchesCatalog(t *testing.T) {
	ds, err := dataset.Builtin()
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	if ds.Len() != 13 {
		t.Errorf("expected 13 rows, got %d", ds.Len())
	}

	schema := feature.SchemaFor(catalog.Default())
	X, y, err := ds.Matrix(schema)
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	if len(X) != len(y) || len(X) != ds.Len() {
		t.Fatalf("matrix shape mismatch: %d rows, %d labels", len(X), len(y))
	}
	for i, row := range X {
		if len(row) != schema.Len() {
			t.Errorf("row %d has %d columns, want %d", i, len(row), schema.Len())
		}
	}

	lo, hi := ds.LabelRange()
	if lo < 10 || hi > 60 {
		t.Errorf("label range [%v, %v] outside [10, 60]", lo, hi)
	}
}

func TestBuiltin_DerivedColumns(t *testing.T) {
	ds, _ := dataset.Builtin()
	schema := feature.SchemaFor(catalog.Default())
	X, _, err := ds.Matrix(schema)
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}

	// chicken stew: 100 + 150 + 200 + 500
	first := feature.Vector{Fields: schema.Fields(), Values: X[0]}
	if first.TotalWeight() != 950 {
		t.Errorf("TotalWeight = %v, want 950", first.TotalWeight())
	}
	if first.IngredientCount() != 4 {
		t.Errorf("IngredientCount = %d, want 4", first.IngredientCount())
	}
	if first.Method() != 0 {
		t.Errorf("Method = %v, want Simmer", first.Method())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"valid", "rows:\n  - name: a\n    method: Fry\n    ingredients: {Eggs: 50}\n    minutes: 5\n", false},
		{"unknown method", "rows:\n  - name: a\n    method: Roast\n    minutes: 5\n", true},
		{"empty", "rows: []\n", true},
		{"negative minutes", "rows:\n  - name: a\n    minutes: -1\n", true},
		{"negative grams", "rows:\n  - name: a\n    ingredients: {Eggs: -5}\n    minutes: 1\n", true},
		{"broken yaml", "rows: [", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dataset.Parse([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMatrix_RejectsUnknownIngredient(t *testing.T) {
	ds, err := dataset.Parse([]byte("rows:\n  - name: a\n    ingredients: {Quinoa: 50}\n    minutes: 5\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, _, err := ds.Matrix(feature.SchemaFor(catalog.Default())); err == nil {
		t.Errorf("expected unknown ingredient error")
	}
}

func TestParse_RejectsUnknownMethod(t *testing.T) {
	_, err := dataset.Parse([]byte(`
rows:
  - name: typo stew
    method: Simer
    ingredients:
      Chicken: 200
    minutes: 30
`))
	if err == nil {
		t.Fatalf("expected error for unknown method tag")
	}
	if !strings.Contains(err.Error(), "Simer") {
		t.Errorf("error should name the bad tag: %v", err)
	}
}
