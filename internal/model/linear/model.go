package linear

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/trknhr/cooktime/internal/model/entity"
	"github.com/trknhr/cooktime/internal/model/scaler"
)

var ErrSingular = errors.New("singular system")

type Params struct {
	Lambda float64 `yaml:"lambda"`
}

func DefaultParams() Params {
	return Params{Lambda: 1.0}
}

// Ridge is an L2 regularized least-squares model fitted on standardized
// features. The intercept is the label mean and is not penalized.
type Ridge struct {
	Params

	scaler    *scaler.Standard
	weights   []float64
	intercept float64
}

func NewRidge(p Params) *Ridge {
	return &Ridge{Params: p}
}

func (r *Ridge) Name() string {
	return "ridge"
}

func (r *Ridge) Fit(X [][]float64, y []float64) error {
	cols, err := entity.CheckTrainingSet(X, y)
	if err != nil {
		return err
	}
	if r.Lambda < 0 {
		return fmt.Errorf("lambda must be non-negative, got %v", r.Lambda)
	}

	s := scaler.NewStandard()
	if err := s.Fit(X); err != nil {
		return err
	}
	rows, err := s.TransformAll(X)
	if err != nil {
		return err
	}
	Z := mat.NewDense(len(rows), cols, nil)
	for i, row := range rows {
		Z.SetRow(i, row)
	}

	mean := stat.Mean(y, nil)
	yc := make([]float64, len(y))
	copy(yc, y)
	floats.AddConst(-mean, yc)

	// (ZᵀZ + λI) w = Zᵀ(y - ȳ)
	A := mat.NewSymDense(cols, nil)
	A.SymOuterK(1, Z.T())
	for j := 0; j < cols; j++ {
		A.SetSym(j, j, A.At(j, j)+r.Lambda)
	}
	var b mat.VecDense
	b.MulVec(Z.T(), mat.NewVecDense(len(yc), yc))

	w, err := solve(A, &b)
	if err != nil {
		return fmt.Errorf("ridge fit: %w", err)
	}

	r.scaler, r.weights, r.intercept = s, w, mean
	return nil
}

func (r *Ridge) Predict(x []float64) (float64, error) {
	if r.weights == nil {
		return 0, entity.ErrNotFitted
	}
	z, err := r.scaler.Transform(x)
	if err != nil {
		return 0, err
	}
	return r.intercept + floats.Dot(r.weights, z), nil
}

// solve factorizes the symmetric system A w = b with a Cholesky
// decomposition. A must be positive definite.
func solve(A *mat.SymDense, b *mat.VecDense) ([]float64, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(A); !ok {
		return nil, ErrSingular
	}
	var w mat.VecDense
	if err := chol.SolveVecTo(&w, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return mat.Col(nil, 0, &w), nil
}
