package entity

import "errors"

var (
	ErrEmptyTrainingSet = errors.New("empty training set")
	ErrNotFitted        = errors.New("model is not fitted")
)

// Regressor is a supervised model mapping a feature row to a scalar.
type Regressor interface {
	Name() string
	Fit(X [][]float64, y []float64) error
	Predict(x []float64) (float64, error)
}
