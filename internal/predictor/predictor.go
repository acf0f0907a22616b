package predictor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trknhr/cooktime/internal/catalog"
	"github.com/trknhr/cooktime/internal/estimator"
	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/metrics"
)

var ErrEmptySelection = errors.New("no ingredients selected")

// Result is one successful estimate.
type Result struct {
	SessionID string
	Minutes   int
	Selection feature.Selection
	Vector    feature.Vector
	At        time.Time
}

// Recorder receives successful results. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(Result)
}

// Predict estimates the cooking time of sel. It waits for h to finish
// training, and converts panics raised while encoding or predicting into
// errors so a bad request never takes the process down.
func Predict(ctx context.Context, h *estimator.Handle, cat *catalog.Catalog, sel feature.Selection) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = Result{}, fmt.Errorf("prediction failed: %v", r)
		}
		if err != nil {
			metrics.PredictionErrors.WithLabelValues(errorKind(err)).Inc()
		}
	}()

	if sel.IsEmpty() {
		return Result{}, ErrEmptySelection
	}

	est, err := h.Wait(ctx)
	if err != nil {
		return Result{}, err
	}

	snapshot := sel.Clone()
	v := feature.Build(snapshot, cat, est.Schema())
	minutes, err := est.Predict(v)
	if err != nil {
		return Result{}, err
	}

	metrics.Predictions.WithLabelValues(snapshot.Method.String()).Inc()
	metrics.PredictedMinutes.Observe(float64(minutes))

	return Result{
		Minutes:   minutes,
		Selection: snapshot,
		Vector:    v,
		At:        time.Now(),
	}, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrEmptySelection):
		return "empty_selection"
	case errors.Is(err, estimator.ErrSchemaMismatch):
		return "schema_mismatch"
	case errors.Is(err, estimator.ErrNotReady):
		return "not_ready"
	default:
		return "internal"
	}
}
