package tree

import (
	"fmt"
	"math"
	"sort"

	"github.com/trknhr/cooktime/internal/model/entity"
)

// Params controls tree growth. MaxDepth <= 0 means unlimited depth.
type Params struct {
	MaxDepth       int
	MinSamplesLeaf int
}

type node struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *node
	right     *node
}

// Tree is a CART regression tree splitting on squared error.
type Tree struct {
	Params

	root      *node
	nFeatures int
}

func NewTree(p Params) *Tree {
	if p.MinSamplesLeaf < 1 {
		p.MinSamplesLeaf = 1
	}
	return &Tree{Params: p}
}

func (t *Tree) Name() string {
	return "tree"
}

func (t *Tree) Fit(X [][]float64, y []float64) error {
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return t.FitIndices(X, y, idx)
}

// FitIndices grows the tree on the rows listed in idx. Repeated indices
// count as repeated samples, which is how bootstrap samples are passed in.
func (t *Tree) FitIndices(X [][]float64, y []float64, idx []int) error {
	cols, err := entity.CheckTrainingSet(X, y)
	if err != nil {
		return err
	}
	if len(idx) == 0 {
		return entity.ErrEmptyTrainingSet
	}
	for _, i := range idx {
		if i < 0 || i >= len(X) {
			return fmt.Errorf("sample index %d out of range", i)
		}
	}
	t.nFeatures = cols
	samples := make([]int, len(idx))
	copy(samples, idx)
	t.root = t.grow(X, y, samples, 0)
	return nil
}

func (t *Tree) Predict(x []float64) (float64, error) {
	if t.root == nil {
		return 0, entity.ErrNotFitted
	}
	if len(x) != t.nFeatures {
		return 0, fmt.Errorf("tree expects %d features, got %d", t.nFeatures, len(x))
	}
	n := t.root
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value, nil
}

// Depth reports the depth of the fitted tree; a single leaf has depth 0.
func (t *Tree) Depth() int {
	return depth(t.root)
}

func depth(n *node) int {
	if n == nil || n.leaf {
		return 0
	}
	l, r := depth(n.left), depth(n.right)
	if l > r {
		return l + 1
	}
	return r + 1
}

func (t *Tree) grow(X [][]float64, y []float64, samples []int, level int) *node {
	mean, sse := stats(y, samples)
	leaf := &node{leaf: true, value: mean}

	if t.MaxDepth > 0 && level >= t.MaxDepth {
		return leaf
	}
	if len(samples) < 2*t.MinSamplesLeaf || sse <= 1e-12 {
		return leaf
	}

	feature, threshold, ok := t.bestSplit(X, y, samples, sse)
	if !ok {
		return leaf
	}

	var left, right []int
	for _, i := range samples {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      t.grow(X, y, left, level+1),
		right:     t.grow(X, y, right, level+1),
	}
}

// bestSplit scans every feature for the threshold with the lowest summed
// squared error of the two children. The first best candidate wins ties so
// fitting is deterministic.
func (t *Tree) bestSplit(X [][]float64, y []float64, samples []int, parentSSE float64) (int, float64, bool) {
	n := len(samples)
	bestSSE := parentSSE
	bestFeature := -1
	var bestThreshold float64

	order := make([]int, n)
	for f := 0; f < t.nFeatures; f++ {
		copy(order, samples)
		sort.SliceStable(order, func(a, b int) bool {
			return X[order[a]][f] < X[order[b]][f]
		})

		var totalSum, totalSq float64
		for _, i := range order {
			totalSum += y[i]
			totalSq += y[i] * y[i]
		}

		var leftSum, leftSq float64
		for k := 0; k < n-1; k++ {
			i := order[k]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			nl := k + 1
			nr := n - nl
			if nl < t.MinSamplesLeaf || nr < t.MinSamplesLeaf {
				continue
			}
			cur, next := X[i][f], X[order[k+1]][f]
			if cur == next {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/float64(nl)) + (rightSq - rightSum*rightSum/float64(nr))
			if sse < bestSSE-1e-12 {
				bestSSE = sse
				bestFeature = f
				bestThreshold = cur + (next-cur)/2
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func stats(y []float64, samples []int) (mean, sse float64) {
	for _, i := range samples {
		mean += y[i]
	}
	mean /= float64(len(samples))
	for _, i := range samples {
		d := y[i] - mean
		sse += d * d
	}
	return mean, math.Max(sse, 0)
}
