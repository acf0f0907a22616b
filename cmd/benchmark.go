package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/trknhr/cooktime/internal/catalog"
	"github.com/trknhr/cooktime/internal/estimator"
	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/model"
	"github.com/trknhr/cooktime/internal/model/dataset"
	"github.com/trknhr/cooktime/internal/predictor"
)

type BenchmarkResult struct {
	Models         string
	TrainTime      time.Duration
	TotalCases     int
	FailedCases    int
	MAE            float64
	AverageLatency time.Duration
	MedianLatency  time.Duration
	P95Latency     time.Duration
	Latencies      []time.Duration
}

func newBenchmarkCmd(a *app) *cobra.Command {
	var (
		modelSets  []string
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare training time, latency and fit of the available regressors",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Builtin()
			if err != nil {
				return err
			}

			var results []*BenchmarkResult
			for _, models := range modelSets {
				opts := a.cfg.ModelOptions()
				opts.Models = models
				res, err := benchmarkModels(opts, ds, iterations)
				if err != nil {
					return fmt.Errorf("%s: %w", models, err)
				}
				results = append(results, res)
			}

			printBenchmarkResults(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&modelSets, "models-set", []string{"forest", "ridge", "forest,ridge"}, "model lists to compare")
	cmd.Flags().IntVar(&iterations, "iterations", 20, "predictions per dataset row")
	return cmd
}

// benchmarkModels trains one configuration and replays every dataset row
// through the full selection path. MAE is measured on the training rows.
func benchmarkModels(opts model.Options, ds *dataset.Dataset, iterations int) (*BenchmarkResult, error) {
	start := time.Now()
	est, _, err := model.TrainNow(opts)
	if err != nil {
		return nil, err
	}

	result := &BenchmarkResult{
		Models:    opts.Models,
		TrainTime: time.Since(start),
	}

	h := estimator.Resolved(est)
	cat := catalog.Default()
	var absErr float64

	for _, row := range ds.Rows {
		sel := rowSelection(row, cat)
		for i := 0; i < iterations; i++ {
			result.TotalCases++

			t := time.Now()
			res, err := predictor.Predict(context.Background(), h, cat, sel)
			result.Latencies = append(result.Latencies, time.Since(t))

			if err != nil {
				result.FailedCases++
				continue
			}
			if i == 0 {
				absErr += math.Abs(float64(res.Minutes) - row.Minutes)
			}
		}
	}

	if len(ds.Rows) > 0 {
		result.MAE = absErr / float64(len(ds.Rows))
	}
	result.AverageLatency = calculateMean(result.Latencies)
	result.MedianLatency = calculateMedian(result.Latencies)
	result.P95Latency = calculatePercentile(result.Latencies, 95)
	return result, nil
}

// rowSelection turns a dataset row given in grams back into unit
// quantities. Rows whose grams are not whole units round to the nearest
// unit, with at least one.
func rowSelection(row dataset.Row, cat *catalog.Catalog) feature.Selection {
	sel := feature.NewSelection(row.Method)
	for name, grams := range row.Ingredients {
		w := cat.Weight(name)
		if w <= 0 || grams <= 0 {
			continue
		}
		qty := int(math.Round(grams / w))
		if qty < 1 {
			qty = 1
		}
		_ = sel.Add(name, qty)
	}
	return sel
}

func calculateMean(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return total / time.Duration(len(durations))
}

func calculateMedian(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	if len(sorted)%2 == 0 {
		return (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}
	return sorted[len(sorted)/2]
}

func calculatePercentile(durations []time.Duration, percentile int) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	index := int(float64(len(sorted)) * float64(percentile) / 100.0)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

func printBenchmarkResults(w io.Writer, results []*BenchmarkResult) {
	sorted := make([]*BenchmarkResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MAE < sorted[j].MAE
	})

	fmt.Fprintf(w, "┌──────────────┬──────────┬─────────┬──────────┬──────────┬────────┐\n")
	fmt.Fprintf(w, "│ Models       │ Train    │ MAE     │ Avg Time │ P95 Time │ Errors │\n")
	fmt.Fprintf(w, "├──────────────┼──────────┼─────────┼──────────┼──────────┼────────┤\n")
	for _, r := range sorted {
		fmt.Fprintf(w, "│ %-12s │ %8v │ %7.2f │ %8v │ %8v │ %6d │\n",
			truncate(r.Models, 12),
			r.TrainTime.Round(time.Millisecond),
			r.MAE,
			r.AverageLatency.Round(time.Microsecond),
			r.P95Latency.Round(time.Microsecond),
			r.FailedCases)
	}
	fmt.Fprintf(w, "└──────────────┴──────────┴─────────┴──────────┴──────────┴────────┘\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-1]) + "…"
}
