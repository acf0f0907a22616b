package ensemble_test

import (
	"errors"
	"testing"
	"time"

	"github.com/trknhr/cooktime/internal/model/ensemble"
)

type mockModel struct {
	name   string
	output float64
	delay  time.Duration
	fitErr error
	fitted bool
}

func (m *mockModel) Name() string { return m.name }

func (m *mockModel) Fit(X [][]float64, y []float64) error {
	time.Sleep(m.delay)
	if m.fitErr != nil {
		return m.fitErr
	}
	m.fitted = true
	return nil
}

func (m *mockModel) Predict(x []float64) (float64, error) {
	return m.output, nil
}

func TestEnsemblePredict(t *testing.T) {
	model1 := &mockModel{name: "a", output: 10}
	model2 := &mockModel{name: "b", output: 40}

	e := ensemble.NewEnsemble([]ensemble.Member{{Regressor: model1, Weight: 1.0}})
	e.Add(model2, 2.0)

	if err := e.Fit([][]float64{{1}}, []float64{1}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if !model1.fitted || !model2.fitted {
		t.Errorf("all members should be fitted")
	}

	got, err := e.Predict([]float64{1})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	// (10*1 + 40*2) / 3
	if got != 30 {
		t.Errorf("expected 30, got %v", got)
	}

	if e.Name() != "ensemble(a,b)" {
		t.Errorf("unexpected name %q", e.Name())
	}
}

func TestEnsembleFit_ParallelMembers(t *testing.T) {
	slow := []ensemble.Member{
		{Regressor: &mockModel{name: "a", delay: 100 * time.Millisecond}, Weight: 1},
		{Regressor: &mockModel{name: "b", delay: 100 * time.Millisecond}, Weight: 1},
		{Regressor: &mockModel{name: "c", delay: 100 * time.Millisecond}, Weight: 1},
	}
	e := ensemble.NewEnsemble(slow)

	start := time.Now()
	if err := e.Fit([][]float64{{1}}, []float64{1}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Errorf("members were not fitted concurrently: %v", elapsed)
	}
}

func TestEnsembleFit_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	e := ensemble.NewEnsemble([]ensemble.Member{
		{Regressor: &mockModel{name: "ok"}, Weight: 1},
		{Regressor: &mockModel{name: "bad", fitErr: boom}, Weight: 1},
	})

	if err := e.Fit(nil, nil); !errors.Is(err, boom) {
		t.Errorf("expected wrapped boom, got %v", err)
	}
}

func TestEnsemble_Empty(t *testing.T) {
	e := ensemble.NewEnsemble(nil)
	if _, err := e.Predict([]float64{1}); !errors.Is(err, ensemble.ErrNoMembers) {
		t.Errorf("expected ErrNoMembers, got %v", err)
	}
	if err := e.Fit(nil, nil); !errors.Is(err, ensemble.ErrNoMembers) {
		t.Errorf("expected ErrNoMembers, got %v", err)
	}
}

func TestEnsemble_ZeroWeights(t *testing.T) {
	e := ensemble.NewEnsemble([]ensemble.Member{{Regressor: &mockModel{name: "a", output: 5}, Weight: 0}})
	if _, err := e.Predict([]float64{1}); err == nil {
		t.Errorf("expected error when no member has weight")
	}
}
