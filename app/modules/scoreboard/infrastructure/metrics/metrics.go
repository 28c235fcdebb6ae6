package scoreboardmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ScoreboardMetrics records service-level measurements.
type ScoreboardMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordScoreUpdate(ctx context.Context, result string)
	RecordNotification(ctx context.Context, result string)
}

// Score update outcomes.
const (
	ResultCommitted = "committed"
	ResultRejected  = "rejected"
	ResultFailed    = "failed"
)

// PrometheusMetrics implements ScoreboardMetrics with Prometheus collectors.
type PrometheusMetrics struct {
	operations    *prometheus.CounterVec
	failures      *prometheus.CounterVec
	durations     *prometheus.HistogramVec
	scoreUpdates  *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them on reg.
func NewPrometheus(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "operations_total",
			Help:      "Service operations started, by operation.",
		}, []string{"operation", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "operation_failures_total",
			Help:      "Service operations that returned an error.",
		}, []string{"operation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scoreboard",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		scoreUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "score_updates_total",
			Help:      "Score update attempts by outcome.",
		}, []string{"result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "notifications_total",
			Help:      "Score change notifications by outcome.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.failures, m.durations, m.scoreUpdates, m.notifications} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "attempt").Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "success").Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.failures.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordScoreUpdate(_ context.Context, result string) {
	m.scoreUpdates.WithLabelValues(result).Inc()
}

func (m *PrometheusMetrics) RecordNotification(_ context.Context, result string) {
	m.notifications.WithLabelValues(result).Inc()
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

// NewNoop returns metrics that record nothing.
func NewNoop() ScoreboardMetrics { return NoopMetrics{} }

func (NoopMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoopMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoopMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoopMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoopMetrics) RecordScoreUpdate(context.Context, string)                      {}
func (NoopMetrics) RecordNotification(context.Context, string)                     {}
