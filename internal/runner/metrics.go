package runner

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	invocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hleval",
			Subsystem: "batch",
			Name:      "invocations_total",
			Help:      "Total number of inference invocations by outcome",
		},
		[]string{"outcome"},
	)

	invocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hleval",
			Subsystem: "batch",
			Name:      "invocation_duration_seconds",
			Help:      "Duration of inference invocations in seconds",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"outcome"},
	)

	invocationInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hleval",
			Subsystem: "batch",
			Name:      "inflight_invocations",
			Help:      "In-flight inference invocations (0 or 1; the batch is sequential)",
		},
	)

	batchCompleted = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hleval",
			Subsystem: "batch",
			Name:      "completed_invocations",
			Help:      "Invocations finished so far in the current batch",
		},
	)
)

func init() {
	prometheus.MustRegister(invocationsTotal, invocationDuration, invocationInflight, batchCompleted)
}
