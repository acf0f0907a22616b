package entity

import "fmt"

// CheckTrainingSet verifies that X is a non-empty rectangular matrix with
// one label per row and returns its column count.
func CheckTrainingSet(X [][]float64, y []float64) (int, error) {
	if len(X) == 0 {
		return 0, ErrEmptyTrainingSet
	}
	if len(X) != len(y) {
		return 0, fmt.Errorf("row count %d does not match label count %d", len(X), len(y))
	}
	cols := len(X[0])
	for i, row := range X {
		if len(row) != cols {
			return 0, fmt.Errorf("row %d has %d columns, want %d", i, len(row), cols)
		}
	}
	return cols, nil
}
