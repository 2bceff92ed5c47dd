package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "esbot"

// Dispatch metrics.
var (
	UpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "updates_total",
			Help:      "Total number of platform updates dispatched, by event kind and route",
		},
		[]string{"kind", "route"},
	)

	RepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "replies_total",
			Help:      "Total number of replies sent, by reply kind and status",
		},
		[]string{"kind", "status"},
	)

	HandlerPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "handler_panics_total",
			Help:      "Total number of recovered panics in the update loop",
		},
	)
)

// Worker pool metrics.
var (
	TasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "tasks",
			Name:      "total",
			Help:      "Total number of background tasks, by pool and outcome",
		},
		[]string{"pool", "status"},
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "tasks",
			Name:      "duration_seconds",
			Help:      "Background task duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"pool"},
	)

	TasksQueued = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "tasks",
			Name:      "queued",
			Help:      "Number of tasks waiting for a worker",
		},
		[]string{"pool"},
	)
)

func RecordUpdate(kind, route string) {
	UpdatesTotal.WithLabelValues(kind, route).Inc()
}

func RecordReply(kind string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RepliesTotal.WithLabelValues(kind, status).Inc()
}

// RecordTask counts a finished (or refused) task. status is one of
// "success", "failed", "rejected".
func RecordTask(pool, status string, duration time.Duration) {
	TasksTotal.WithLabelValues(pool, status).Inc()
	if duration > 0 {
		TaskDuration.WithLabelValues(pool).Observe(duration.Seconds())
	}
}
