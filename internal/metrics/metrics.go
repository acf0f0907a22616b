package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Prediction metrics
	Predictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cooktime_predictions_total",
			Help: "Total number of successful cooking time predictions",
		},
		[]string{"method"},
	)
	PredictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cooktime_prediction_errors_total",
			Help: "Total number of failed prediction requests",
		},
		[]string{"kind"},
	)
	PredictedMinutes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cooktime_predicted_minutes",
			Help:    "Distribution of predicted cooking times in minutes",
			Buckets: []float64{5, 10, 15, 20, 30, 45, 60, 90},
		},
	)

	// Training metrics
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cooktime_training_duration_seconds",
			Help:    "Duration of estimator training in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)
	TrainingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cooktime_training_failures_total",
			Help: "Total number of estimator trainings that failed",
		},
	)

	// Journal metrics
	JournalDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cooktime_journal_dropped_total",
			Help: "Total number of journal entries dropped because the queue was full",
		},
	)
)

// Serve exposes the default registry on addr under /metrics. It blocks
// until the listener fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
