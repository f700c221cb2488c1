package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for sockpool components.
type Registry struct {
	// Pool Metrics
	TasksSubmitted  *prometheus.CounterVec
	TasksCompleted  *prometheus.CounterVec
	TasksRejected   *prometheus.CounterVec
	TaskDuration    *prometheus.HistogramVec
	SubmitWaitTime  *prometheus.HistogramVec
	PoolWorkers     *prometheus.GaugeVec
	PoolQueueDepth  *prometheus.GaugeVec
	PoolActiveTasks *prometheus.GaugeVec

	// Rate Limiting Metrics
	RateLimitRequests *prometheus.CounterVec
	RateLimitAllowed  *prometheus.CounterVec
	RateLimitDenied   *prometheus.CounterVec
	RateLimitWaitTime *prometheus.HistogramVec

	// Buffer Allocator Metrics
	BuffersObtained *prometheus.CounterVec
	BuffersRecycled *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by sockpool components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Pool Metrics
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sockpool",
				Subsystem: "pool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks accepted by the pool",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sockpool",
				Subsystem: "pool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks that finished executing",
			},
			[]string{"pool_name"},
		),

		TasksRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sockpool",
				Subsystem: "pool",
				Name:      "tasks_rejected_total",
				Help:      "Total number of rejected submissions by reason",
			},
			[]string{"pool_name", "reason"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sockpool",
				Subsystem: "pool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		SubmitWaitTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sockpool",
				Subsystem: "pool",
				Name:      "submit_wait_duration_seconds",
				Help:      "Time spent inside Submit calls, including blocked waits and caller-run execution",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		PoolWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "sockpool",
				Subsystem: "pool",
				Name:      "workers",
				Help:      "Current number of workers",
			},
			[]string{"pool_name"},
		),

		PoolQueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "sockpool",
				Subsystem: "pool",
				Name:      "queue_depth",
				Help:      "Number of queued tasks",
			},
			[]string{"pool_name"},
		),

		PoolActiveTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "sockpool",
				Subsystem: "pool",
				Name:      "active_tasks",
				Help:      "Number of tasks currently executing",
			},
			[]string{"pool_name"},
		),

		// Rate Limiting Metrics
		RateLimitRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sockpool",
				Subsystem: "ratelimit",
				Name:      "requests_total",
				Help:      "Total number of rate limit requests",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		RateLimitAllowed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sockpool",
				Subsystem: "ratelimit",
				Name:      "allowed_total",
				Help:      "Total number of allowed requests",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		RateLimitDenied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sockpool",
				Subsystem: "ratelimit",
				Name:      "denied_total",
				Help:      "Total number of denied requests",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		RateLimitWaitTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sockpool",
				Subsystem: "ratelimit",
				Name:      "wait_duration_seconds",
				Help:      "Time spent waiting for rate limit approval",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"limiter_type", "limiter_name"},
		),

		// Buffer Allocator Metrics
		BuffersObtained: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sockpool",
				Subsystem: "allocator",
				Name:      "buffers_obtained_total",
				Help:      "Total number of buffers handed out by the allocator",
			},
			[]string{"allocator_name"},
		),

		BuffersRecycled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sockpool",
				Subsystem: "allocator",
				Name:      "buffers_recycled_total",
				Help:      "Total number of buffers returned to the allocator",
			},
			[]string{"allocator_name"},
		),
	}
}
