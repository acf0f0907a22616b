package scaler

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/trknhr/cooktime/internal/model/entity"
)

// Standard centers every column on its mean and divides by its population
// standard deviation. Constant columns keep a scale of 1.
type Standard struct {
	Mean  []float64
	Scale []float64
}

func NewStandard() *Standard {
	return &Standard{}
}

func (s *Standard) Fit(X [][]float64) error {
	if len(X) == 0 {
		return entity.ErrEmptyTrainingSet
	}
	cols := len(X[0])
	data := make([]float64, 0, len(X)*cols)
	for i, row := range X {
		if len(row) != cols {
			return fmt.Errorf("row %d has %d columns, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	m := mat.NewDense(len(X), cols, data)

	mean := make([]float64, cols)
	scale := make([]float64, cols)
	col := make([]float64, len(X))
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		mean[j], scale[j] = stat.PopMeanStdDev(col, nil)
		if scale[j] < 1e-12 {
			scale[j] = 1
		}
	}

	s.Mean, s.Scale = mean, scale
	return nil
}

func (s *Standard) Transform(x []float64) ([]float64, error) {
	if s.Mean == nil {
		return nil, entity.ErrNotFitted
	}
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(x))
	}
	out := make([]float64, len(x))
	floats.SubTo(out, x, s.Mean)
	floats.Div(out, s.Scale)
	return out, nil
}

func (s *Standard) TransformAll(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, row := range X {
		t, err := s.Transform(row)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
