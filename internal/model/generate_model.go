package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trknhr/cooktime/internal/catalog"
	"github.com/trknhr/cooktime/internal/estimator"
	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/logger"
	"github.com/trknhr/cooktime/internal/metrics"
	"github.com/trknhr/cooktime/internal/model/dataset"
	"github.com/trknhr/cooktime/internal/model/ensemble"
	"github.com/trknhr/cooktime/internal/model/entity"
	"github.com/trknhr/cooktime/internal/model/forest"
	"github.com/trknhr/cooktime/internal/model/linear"
	"github.com/trknhr/cooktime/internal/model/tuning"
)

var knownModels = map[string]bool{"forest": true, "ridge": true}

type Options struct {
	// Models is a comma-separated list of regressors (forest, ridge).
	// Empty means forest only.
	Models     string
	Forest     forest.Params
	Ridge      linear.Params
	GridSearch bool
	Folds      int
	Catalog    *catalog.Catalog
	Dataset    *dataset.Dataset
}

func DefaultOptions() Options {
	return Options{
		Models: "forest",
		Forest: forest.DefaultParams(),
		Ridge:  linear.DefaultParams(),
		Folds:  3,
	}
}

// ParseModels validates a comma-separated model list.
func ParseModels(filterModels string) ([]string, error) {
	if strings.TrimSpace(filterModels) == "" {
		return []string{"forest"}, nil
	}
	var names []string
	seen := map[string]bool{}
	for _, name := range strings.Split(filterModels, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		if !knownModels[name] {
			return nil, fmt.Errorf("unknown model %q (available: forest, ridge)", name)
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no models selected")
	}
	return names, nil
}

// GenerateModel validates opts and trains the estimator on a background
// goroutine. The handle resolves exactly once; a single event describing
// the outcome is sent before the channel is closed.
func GenerateModel(opts Options) (*estimator.Handle, <-chan ModelInitEvent, error) {
	names, err := ParseModels(opts.Models)
	if err != nil {
		return nil, nil, err
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Dataset == nil {
		ds, err := dataset.Builtin()
		if err != nil {
			return nil, nil, err
		}
		opts.Dataset = ds
	}
	if opts.Folds == 0 {
		opts.Folds = 3
	}

	h := estimator.NewHandle()
	ch := make(chan ModelInitEvent, 1)

	go func() {
		defer close(ch)
		start := time.Now()

		est, detail, err := train(opts, names)
		h.Resolve(est, err)
		metrics.TrainingDuration.Observe(time.Since(start).Seconds())

		name := strings.Join(names, "+")
		if err != nil {
			metrics.TrainingFailures.Inc()
			ch <- ModelInitEvent{Name: name, Status: ModelError, Err: err}
			return
		}
		logger.Info("[%s] trained on %d rows in %s (%s)", name, est.TrainingRows(), time.Since(start).Round(time.Millisecond), detail)
		ch <- ModelInitEvent{Name: name, Status: ModelReady, Detail: detail}
	}()

	return h, ch, nil
}

// TrainNow trains synchronously. Used by one-shot commands.
func TrainNow(opts Options) (*estimator.Estimator, string, error) {
	h, events, err := GenerateModel(opts)
	if err != nil {
		return nil, "", err
	}
	detail := DrainAndLogEvents(events)
	est, err := h.Wait(context.Background())
	return est, detail, err
}

func train(opts Options, names []string) (*estimator.Estimator, string, error) {
	schema := feature.SchemaFor(opts.Catalog)
	params := opts.Forest
	var details []string

	var members []ensemble.Member
	for _, name := range names {
		switch name {
		case "forest":
			if opts.GridSearch {
				X, y, err := opts.Dataset.Matrix(schema)
				if err != nil {
					return nil, "", err
				}
				res, err := tuning.GridSearch(X, y, tuning.DefaultGrid().Candidates(params.Seed), opts.Folds)
				if err != nil {
					return nil, "", fmt.Errorf("grid search failed: %w", err)
				}
				params = res.Best
				details = append(details, fmt.Sprintf("forest %s cv_mse=%.2f", params, res.MSE))
			} else {
				details = append(details, "forest "+params.String())
			}
			members = append(members, ensemble.Member{Regressor: forest.NewForest(params), Weight: 1})
		case "ridge":
			details = append(details, fmt.Sprintf("ridge lambda=%g", opts.Ridge.Lambda))
			members = append(members, ensemble.Member{Regressor: linear.NewRidge(opts.Ridge), Weight: 1})
		}
	}

	var reg entity.Regressor
	if len(members) == 1 {
		reg = members[0].Regressor
	} else {
		reg = ensemble.NewEnsemble(members)
	}

	est, err := estimator.Train(opts.Dataset, schema, reg)
	if err != nil {
		return nil, "", err
	}
	return est, strings.Join(details, "; "), nil
}
