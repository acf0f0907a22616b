package predictor_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trknhr/cooktime/internal/catalog"
	"github.com/trknhr/cooktime/internal/estimator"
	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/model"
	"github.com/trknhr/cooktime/internal/predictor"
)

var (
	trainOnce sync.Once
	trained   *estimator.Estimator
	trainErr  error
)

func readyHandle(t *testing.T) *estimator.Handle {
	t.Helper()
	trainOnce.Do(func() {
		trained, _, trainErr = model.TrainNow(model.DefaultOptions())
	})
	require.NoError(t, trainErr)
	return estimator.Resolved(trained)
}

func TestPredict_StewScenario(t *testing.T) {
	sel := feature.Selection{
		Quantities: map[string]int{"Chicken": 1, "Carrots": 1, "Potatoes": 1},
		Method:     feature.Simmer,
	}

	res, err := predictor.Predict(context.Background(), readyHandle(t), catalog.Default(), sel)
	require.NoError(t, err)

	assert.Equal(t, 450.0, res.Vector.TotalWeight())
	assert.Equal(t, 3, res.Vector.IngredientCount())
	assert.Equal(t, 0.0, res.Vector.Method())
	assert.GreaterOrEqual(t, res.Minutes, 10)
	assert.LessOrEqual(t, res.Minutes, 60)
}

func TestPredict_EmptySelectionSkipsEstimator(t *testing.T) {
	// The handle never resolves: reaching the estimator would block until
	// the deadline instead of returning ErrEmptySelection.
	pending := estimator.NewHandle()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := predictor.Predict(ctx, pending, catalog.Default(), feature.NewSelection(feature.Boil))
	assert.ErrorIs(t, err, predictor.ErrEmptySelection)
}

func TestPredict_ZeroQuantitiesCountAsEmpty(t *testing.T) {
	pending := estimator.NewHandle()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	sel := feature.Selection{Quantities: map[string]int{"Chicken": 0, "Carrots": -1}}
	_, err := predictor.Predict(ctx, pending, catalog.Default(), sel)
	assert.ErrorIs(t, err, predictor.ErrEmptySelection)
}

func TestPredict_UnknownIngredientIsLenient(t *testing.T) {
	h := readyHandle(t)

	sel := feature.Selection{Quantities: map[string]int{"Quinoa": 1, "Carrots": 1}}
	res, err := predictor.Predict(context.Background(), h, catalog.Default(), sel)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Vector.TotalWeight())
	assert.Equal(t, 1, res.Vector.IngredientCount())

	only := feature.Selection{Quantities: map[string]int{"Quinoa": 1}}
	res, err = predictor.Predict(context.Background(), h, catalog.Default(), only)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Vector.TotalWeight())
	assert.Equal(t, 0, res.Vector.IngredientCount())
	assert.GreaterOrEqual(t, res.Minutes, 0)
}

func TestPredict_UnknownMethodEncodesAsSimmer(t *testing.T) {
	h := readyHandle(t)
	q := map[string]int{"Fish": 1, "Water": 1}

	odd, err := predictor.Predict(context.Background(), h, catalog.Default(), feature.Selection{Quantities: q, Method: feature.Method(7)})
	require.NoError(t, err)
	simmer, err := predictor.Predict(context.Background(), h, catalog.Default(), feature.Selection{Quantities: q, Method: feature.Simmer})
	require.NoError(t, err)

	assert.Equal(t, 0.0, odd.Vector.Method())
	assert.Equal(t, simmer.Minutes, odd.Minutes)
}

func TestPredict_AllMethodsNonNegativeAndDeterministic(t *testing.T) {
	h := readyHandle(t)
	cat := catalog.Default()

	for _, name := range cat.Names() {
		for _, m := range feature.Methods() {
			for qty := 1; qty <= 3; qty++ {
				sel := feature.Selection{Quantities: map[string]int{name: qty}, Method: m}
				a, err := predictor.Predict(context.Background(), h, cat, sel)
				require.NoError(t, err)
				b, err := predictor.Predict(context.Background(), h, cat, sel)
				require.NoError(t, err)

				assert.GreaterOrEqual(t, a.Minutes, 0)
				assert.Equal(t, a.Minutes, b.Minutes, "%s x%d %s", name, qty, m)
				assert.Equal(t, cat.Len()+3, a.Vector.Len())
			}
		}
	}
}

func TestPredict_WaitsForTraining(t *testing.T) {
	h := estimator.NewHandle()
	ready := readyHandle(t)
	est, err := ready.Wait(context.Background())
	require.NoError(t, err)

	go func() {
		time.Sleep(20 * time.Millisecond)
		h.Resolve(est, nil)
	}()

	sel := feature.Selection{Quantities: map[string]int{"Eggs": 2}, Method: feature.Boil}
	res, err := predictor.Predict(context.Background(), h, catalog.Default(), sel)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Minutes, 0)
}

func TestPredict_TrainingFailureSurfaces(t *testing.T) {
	h := estimator.NewHandle()
	h.Resolve(nil, errors.New("dataset unreadable"))

	sel := feature.Selection{Quantities: map[string]int{"Eggs": 2}}
	_, err := predictor.Predict(context.Background(), h, catalog.Default(), sel)
	assert.ErrorIs(t, err, estimator.ErrNotReady)
}

func TestPredict_RecoversPanics(t *testing.T) {
	sel := feature.Selection{Quantities: map[string]int{"Eggs": 2}}

	var res predictor.Result
	var err error
	assert.NotPanics(t, func() {
		res, err = predictor.Predict(context.Background(), nil, catalog.Default(), sel)
	})
	assert.Error(t, err)
	assert.Equal(t, 0, res.Minutes)
}
