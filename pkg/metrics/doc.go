// Package metrics provides Prometheus instrumentation for sockpool components.
//
// This package enables monitoring for the worker pool, the per-connection
// rate limiters, and the socket task buffer allocator through Prometheus
// metrics.
//
// # Quick Start
//
// Enable metrics by wrapping components with their instrumented variants:
//
//	// Worker pool with metrics
//	p := pool.Instrument(pool.New(), "event_pool", metrics.DefaultConfig())
//
//	// Rate limiter with metrics
//	limiter = ratelimit.InstrumentLimiter(limiter, "local", "conn_limiter", nil)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//	p := pool.Instrument(pool.New(), "event_pool", config)
//
// # Available Metrics
//
// ## Worker Pool Metrics
//
//   - sockpool_pool_tasks_submitted_total: Tasks accepted by the pool
//   - sockpool_pool_tasks_completed_total: Tasks that finished executing
//   - sockpool_pool_tasks_rejected_total: Rejected submissions by reason
//   - sockpool_pool_task_duration_seconds: Time spent executing tasks
//   - sockpool_pool_submit_wait_duration_seconds: Time spent inside Submit calls, including blocked waits and caller-run execution
//   - sockpool_pool_workers: Current number of workers
//   - sockpool_pool_queue_depth: Number of queued tasks
//   - sockpool_pool_active_tasks: Number of tasks currently executing
//
// ## Rate Limiting Metrics
//
//   - sockpool_ratelimit_requests_total: Total number of rate limit requests
//   - sockpool_ratelimit_allowed_total: Total number of allowed requests
//   - sockpool_ratelimit_denied_total: Total number of denied requests
//   - sockpool_ratelimit_wait_duration_seconds: Time spent waiting for approval
//
// ## Allocator Metrics
//
//   - sockpool_allocator_buffers_obtained_total: Buffers handed out
//   - sockpool_allocator_buffers_recycled_total: Buffers returned
//
// # Labels
//
//   - pool_name: User-provided name for the pool instance
//   - reason: Rejection reason ("full", "timeout", "canceled", "state", "other")
//   - limiter_type: "local" or "redis"
//   - limiter_name: User-provided name for the limiter instance
//   - allocator_name: User-provided name for the allocator instance
//
// # Runtime Control
//
// Components implementing the Instrumentable interface support runtime control:
//
//	p.DisableMetrics()            // Stop collecting metrics
//	p.EnableMetrics(config)       // Re-enable with new config
//	enabled := p.MetricsEnabled() // Check current state
package metrics
