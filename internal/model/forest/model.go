package forest

import (
	"fmt"
	"math/rand"

	"github.com/trknhr/cooktime/internal/model/entity"
	"github.com/trknhr/cooktime/internal/model/tree"
	"golang.org/x/sync/errgroup"
)

type Params struct {
	Trees          int   `yaml:"trees"`
	MaxDepth       int   `yaml:"max_depth"`
	MinSamplesLeaf int   `yaml:"min_samples_leaf"`
	Seed           int64 `yaml:"seed"`
}

func DefaultParams() Params {
	return Params{Trees: 200, MaxDepth: 10, MinSamplesLeaf: 1, Seed: 42}
}

func (p Params) String() string {
	return fmt.Sprintf("trees=%d max_depth=%d min_samples_leaf=%d", p.Trees, p.MaxDepth, p.MinSamplesLeaf)
}

// Forest is a bagged ensemble of regression trees. Every tree draws its
// bootstrap sample from its own seeded source, so a fit is reproducible
// regardless of goroutine scheduling.
type Forest struct {
	Params

	trees []*tree.Tree
}

func NewForest(p Params) *Forest {
	if p.Trees < 1 {
		p.Trees = 1
	}
	return &Forest{Params: p}
}

func (f *Forest) Name() string {
	return "forest"
}

func (f *Forest) Fit(X [][]float64, y []float64) error {
	if _, err := entity.CheckTrainingSet(X, y); err != nil {
		return err
	}

	trees := make([]*tree.Tree, f.Trees)
	var g errgroup.Group
	for i := range trees {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(f.Seed + int64(i)))
			sample := make([]int, len(X))
			for k := range sample {
				sample[k] = rng.Intn(len(X))
			}
			t := tree.NewTree(tree.Params{MaxDepth: f.MaxDepth, MinSamplesLeaf: f.MinSamplesLeaf})
			if err := t.FitIndices(X, y, sample); err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			trees[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f.trees = trees
	return nil
}

// Predict averages the tree outputs.
func (f *Forest) Predict(x []float64) (float64, error) {
	if len(f.trees) == 0 {
		return 0, entity.ErrNotFitted
	}
	var sum float64
	for _, t := range f.trees {
		v, err := t.Predict(x)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float64(len(f.trees)), nil
}
