package tuning

import (
	"fmt"
	"runtime"

	"github.com/trknhr/cooktime/internal/model/entity"
	"github.com/trknhr/cooktime/internal/model/forest"
	"golang.org/x/sync/errgroup"
)

// Grid lists the candidate values per forest parameter.
type Grid struct {
	Trees          []int
	MaxDepth       []int
	MinSamplesLeaf []int
}

func DefaultGrid() Grid {
	return Grid{
		Trees:          []int{50, 100, 200},
		MaxDepth:       []int{3, 5, 10},
		MinSamplesLeaf: []int{1, 2},
	}
}

// Candidates expands the grid in a fixed order: trees, then depth, then
// leaf size.
func (g Grid) Candidates(seed int64) []forest.Params {
	var out []forest.Params
	for _, n := range g.Trees {
		for _, d := range g.MaxDepth {
			for _, l := range g.MinSamplesLeaf {
				out = append(out, forest.Params{Trees: n, MaxDepth: d, MinSamplesLeaf: l, Seed: seed})
			}
		}
	}
	return out
}

type Score struct {
	Params forest.Params
	MSE    float64
}

type Result struct {
	Best   forest.Params
	MSE    float64
	Scores []Score
}

// GridSearch scores every candidate with k-fold cross validation and picks
// the lowest mean squared error. Earlier candidates win ties.
func GridSearch(X [][]float64, y []float64, candidates []forest.Params, folds int) (Result, error) {
	if _, err := entity.CheckTrainingSet(X, y); err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("no candidates to search")
	}

	scores := make([]Score, len(candidates))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, p := range candidates {
		g.Go(func() error {
			mse, err := CrossValidate(X, y, folds, func() entity.Regressor {
				return forest.NewForest(p)
			})
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			scores[i] = Score{Params: p, MSE: mse}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].MSE < scores[best].MSE {
			best = i
		}
	}
	return Result{Best: scores[best].Params, MSE: scores[best].MSE, Scores: scores}, nil
}

// CrossValidate returns the mean squared error over contiguous, unshuffled
// folds. Fold sizes differ by at most one row.
func CrossValidate(X [][]float64, y []float64, folds int, newModel func() entity.Regressor) (float64, error) {
	n := len(X)
	if folds < 2 || folds > n {
		return 0, fmt.Errorf("fold count %d must be between 2 and %d", folds, n)
	}

	var sq float64
	start := 0
	for k := 0; k < folds; k++ {
		size := n / folds
		if k < n%folds {
			size++
		}
		end := start + size

		var trainX [][]float64
		var trainY []float64
		for i := 0; i < n; i++ {
			if i < start || i >= end {
				trainX = append(trainX, X[i])
				trainY = append(trainY, y[i])
			}
		}

		m := newModel()
		if err := m.Fit(trainX, trainY); err != nil {
			return 0, err
		}
		for i := start; i < end; i++ {
			p, err := m.Predict(X[i])
			if err != nil {
				return 0, err
			}
			d := p - y[i]
			sq += d * d
		}
		start = end
	}
	return sq / float64(n), nil
}
