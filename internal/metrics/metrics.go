// Package metrics provides Prometheus metrics for the consumption and
// forecast engine
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Consumption metrics
	ConsumptionOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardtrack_consumption_operations_total",
			Help: "Total number of consumption operations",
		},
		[]string{"status"},
	)

	ConsumptionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "boardtrack_consumption_duration_seconds",
			Help:    "Time taken by a full consumption operation",
			Buckets: prometheus.DefBuckets,
		},
	)

	BoardsSummarized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardtrack_boards_summarized_total",
			Help: "Total boards counted from inspection images",
		},
		[]string{"board_type"},
	)

	// Decrement metrics
	DecrementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardtrack_decrements_total",
			Help: "Total number of inventory decrement mutations",
		},
		[]string{"status"},
	)

	DecrementsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "boardtrack_decrements_in_flight",
			Help: "Number of inventory decrements currently in flight",
		},
	)

	DecrementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "boardtrack_decrement_duration_seconds",
			Help:    "Duration of individual inventory decrement mutations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// Forecast metrics
	ForecastCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardtrack_forecast_calls_total",
			Help: "Total number of calls to the prediction service",
		},
		[]string{"endpoint", "status"},
	)

	ForecastCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boardtrack_forecast_call_duration_seconds",
			Help:    "Duration of calls to the prediction service",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Skip diagnostics
	SkippedInputsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardtrack_skipped_inputs_total",
			Help: "Inputs excluded from aggregation (unparseable image names, unresolved board types, non-positive counts)",
		},
		[]string{"reason"},
	)
)

// RecordConsumption records the outcome and duration of a consumption operation.
func RecordConsumption(status string, duration time.Duration) {
	ConsumptionOpsTotal.WithLabelValues(status).Inc()
	ConsumptionDuration.Observe(duration.Seconds())
}

// RecordDecrement records a single settled decrement mutation.
func RecordDecrement(status string, duration time.Duration) {
	DecrementsTotal.WithLabelValues(status).Inc()
	DecrementDuration.Observe(duration.Seconds())
}

// RecordForecastCall records a call to the prediction service.
func RecordForecastCall(endpoint string, status string, duration time.Duration) {
	ForecastCallsTotal.WithLabelValues(endpoint, status).Inc()
	ForecastCallDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordSkip records an input excluded from aggregation.
func RecordSkip(reason string) {
	SkippedInputsTotal.WithLabelValues(reason).Inc()
}

// Timer is a helper for measuring duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop returns the elapsed time since the timer was created
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
