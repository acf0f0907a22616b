package dataset

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/trknhr/cooktime/internal/feature"
	"gopkg.in/yaml.v3"
)

//go:embed data/stews.yaml
var stewData []byte

// Row is one labelled recipe. Ingredient values are grams, already
// multiplied by quantity. Method tags must be exact; Parse rejects unknown
// ones instead of falling back to Simmer.
type Row struct {
	Name        string             `yaml:"name"`
	Method      feature.Method     `yaml:"method"`
	Ingredients map[string]float64 `yaml:"ingredients"`
	Minutes     float64            `yaml:"minutes"`
}

type Dataset struct {
	Rows []Row `yaml:"rows"`
}

var (
	loadOnce sync.Once
	builtin  *Dataset
	loadErr  error
)

// Builtin returns the dataset embedded in the binary. It is parsed once and
// must be treated as read-only.
func Builtin() (*Dataset, error) {
	loadOnce.Do(func() {
		builtin, loadErr = Parse(stewData)
	})
	return builtin, loadErr
}

func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}
	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("dataset has no rows")
	}
	for i, r := range ds.Rows {
		if r.Minutes < 0 {
			return nil, fmt.Errorf("row %d (%s): negative minutes %v", i, r.Name, r.Minutes)
		}
		for name, grams := range r.Ingredients {
			if grams < 0 {
				return nil, fmt.Errorf("row %d (%s): negative amount for %s", i, r.Name, name)
			}
		}
	}
	return &ds, nil
}

func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Matrix lays the rows out in schema order. A row naming an ingredient the
// schema does not know is rejected, since dropping it would silently change
// the label's meaning.
func (d *Dataset) Matrix(schema feature.Schema) ([][]float64, []float64, error) {
	pos := make(map[string]int, len(schema.Ingredients))
	for i, name := range schema.Ingredients {
		pos[name] = i
	}

	X := make([][]float64, len(d.Rows))
	y := make([]float64, len(d.Rows))
	for i, r := range d.Rows {
		weights := make([]float64, len(schema.Ingredients))
		for name, grams := range r.Ingredients {
			j, ok := pos[name]
			if !ok {
				return nil, nil, fmt.Errorf("row %d (%s): ingredient %q is not in the schema", i, r.Name, name)
			}
			weights[j] = grams
		}
		X[i] = feature.Assemble(schema, weights, r.Method).Values
		y[i] = r.Minutes
	}
	return X, y, nil
}

// LabelRange returns the smallest and largest label.
func (d *Dataset) LabelRange() (lo, hi float64) {
	for i, r := range d.Rows {
		if i == 0 || r.Minutes < lo {
			lo = r.Minutes
		}
		if i == 0 || r.Minutes > hi {
			hi = r.Minutes
		}
	}
	return lo, hi
}
