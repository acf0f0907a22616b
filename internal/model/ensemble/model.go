package ensemble

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/trknhr/cooktime/internal/model/entity"
	"golang.org/x/sync/errgroup"
)

var ErrNoMembers = errors.New("ensemble has no members")

type Member struct {
	Regressor entity.Regressor
	Weight    float64
}

// Ensemble averages member predictions weighted by Member.Weight.
type Ensemble struct {
	Members atomic.Value // []Member
}

func NewEnsemble(members []Member) *Ensemble {
	e := &Ensemble{}
	e.Members.Store(members)
	return e
}

// Add appends a member. It must be fitted before the next Predict.
func (e *Ensemble) Add(r entity.Regressor, weight float64) {
	cur := e.members()
	next := make([]Member, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = Member{Regressor: r, Weight: weight}
	e.Members.Store(next)
}

func (e *Ensemble) members() []Member {
	m, _ := e.Members.Load().([]Member)
	return m
}

func (e *Ensemble) Name() string {
	names := make([]string, 0, len(e.members()))
	for _, m := range e.members() {
		names = append(names, m.Regressor.Name())
	}
	return "ensemble(" + strings.Join(names, ",") + ")"
}

// Fit trains every member concurrently on the same data.
func (e *Ensemble) Fit(X [][]float64, y []float64) error {
	members := e.members()
	if len(members) == 0 {
		return ErrNoMembers
	}

	var g errgroup.Group
	for _, m := range members {
		g.Go(func() error {
			if err := m.Regressor.Fit(X, y); err != nil {
				return fmt.Errorf("%s: %w", m.Regressor.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (e *Ensemble) Predict(x []float64) (float64, error) {
	members := e.members()
	if len(members) == 0 {
		return 0, ErrNoMembers
	}

	var sum, total float64
	for _, m := range members {
		if m.Weight <= 0 {
			continue
		}
		v, err := m.Regressor.Predict(x)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", m.Regressor.Name(), err)
		}
		sum += v * m.Weight
		total += m.Weight
	}
	if total == 0 {
		return 0, fmt.Errorf("ensemble members carry no positive weight")
	}
	return sum / total, nil
}
