package estimator

import (
	"fmt"
	"math"

	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/model/dataset"
	"github.com/trknhr/cooktime/internal/model/entity"
)

// Estimator is a trained regressor bound to the schema it was trained
// with. It is never mutated after Train returns.
type Estimator struct {
	schema feature.Schema
	fields []string
	model  entity.Regressor
	rows   int
}

// Train fits model on ds laid out in schema order.
func Train(ds *dataset.Dataset, schema feature.Schema, model entity.Regressor) (*Estimator, error) {
	X, y, err := ds.Matrix(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to build training matrix: %w", err)
	}
	if err := model.Fit(X, y); err != nil {
		return nil, fmt.Errorf("failed to fit %s: %w", model.Name(), err)
	}
	return &Estimator{
		schema: feature.NewSchema(schema.Ingredients),
		fields: schema.Fields(),
		model:  model,
		rows:   len(X),
	}, nil
}

// Schema returns the field order callers must use to build vectors.
func (e *Estimator) Schema() feature.Schema {
	return feature.NewSchema(e.schema.Ingredients)
}

func (e *Estimator) ModelName() string {
	return e.model.Name()
}

func (e *Estimator) TrainingRows() int {
	return e.rows
}

// Predict returns the estimated minutes rounded to the nearest integer.
// Negative model outputs are clamped to zero.
func (e *Estimator) Predict(v feature.Vector) (int, error) {
	if err := e.checkSchema(v); err != nil {
		return 0, err
	}
	raw, err := e.model.Predict(v.Values)
	if err != nil {
		return 0, fmt.Errorf("%s prediction failed: %w", e.model.Name(), err)
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, fmt.Errorf("%s produced a non-finite prediction", e.model.Name())
	}
	minutes := int(math.Round(raw))
	if minutes < 0 {
		minutes = 0
	}
	return minutes, nil
}

func (e *Estimator) checkSchema(v feature.Vector) error {
	mismatch := len(v.Fields) != len(e.fields) || len(v.Values) != len(e.fields)
	if !mismatch {
		for i, f := range e.fields {
			if v.Fields[i] != f {
				mismatch = true
				break
			}
		}
	}
	if mismatch {
		return &SchemaMismatchError{Expected: e.fields, Got: v.Fields}
	}
	return nil
}
