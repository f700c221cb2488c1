package pool

import (
	"errors"
	"time"

	"github.com/vnykmshr/sockpool/pkg/metrics"
)

// MetricsPool wraps a Pool with Prometheus metrics collection.
type MetricsPool struct {
	*Pool
	name     string
	registry *metrics.Registry
	enabled  bool
}

// Instrument wraps p with metrics collection. The pool is reported under
// the given name.
func Instrument(p *Pool, name string, metricsConfig metrics.Config) *MetricsPool {
	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mp := &MetricsPool{
		Pool:     p,
		name:     name,
		registry: registry,
		enabled:  metricsConfig.Enabled,
	}
	mp.updateGauges()
	return mp
}

// Start starts the underlying pool with completion counting hooked into
// the configured callbacks.
func (mp *MetricsPool) Start(cfg Config) error {
	if mp.enabled {
		prev := cfg.OnTaskDone
		cfg.OnTaskDone = func(arg any, d time.Duration) {
			mp.registry.TasksCompleted.WithLabelValues(mp.name).Inc()
			mp.registry.TaskDuration.WithLabelValues(mp.name).Observe(d.Seconds())
			mp.updateGauges()
			if prev != nil {
				prev(arg, d)
			}
		}
	}
	err := mp.Pool.Start(cfg)
	mp.updateGauges()
	return err
}

// Stop stops the underlying pool and refreshes the gauges.
func (mp *MetricsPool) Stop(maxWait time.Duration) error {
	err := mp.Pool.Stop(maxWait)
	mp.updateGauges()
	return err
}

// Submit submits a plain task, recording acceptance, rejection reason
// and the time spent in the call (blocked waits and caller-run
// execution included).
func (mp *MetricsPool) Submit(fn TaskFunc, arg any, maxWait time.Duration) error {
	start := time.Now()
	err := mp.Pool.Submit(fn, arg, maxWait)
	mp.record(start, err)
	return err
}

// SubmitTask submits a socket task with the same accounting as Submit.
func (mp *MetricsPool) SubmitTask(st *SocketTask, maxWait time.Duration) error {
	start := time.Now()
	err := mp.Pool.SubmitTask(st, maxWait)
	mp.record(start, err)
	return err
}

// AdjustWorkerCount resizes the pool and refreshes the worker gauge.
func (mp *MetricsPool) AdjustWorkerCount(count int) error {
	err := mp.Pool.AdjustWorkerCount(count)
	mp.updateGauges()
	return err
}

func (mp *MetricsPool) record(start time.Time, err error) {
	if !mp.enabled {
		return
	}
	mp.registry.SubmitWaitTime.WithLabelValues(mp.name).Observe(time.Since(start).Seconds())
	if err == nil {
		mp.registry.TasksSubmitted.WithLabelValues(mp.name).Inc()
	} else {
		mp.registry.TasksRejected.WithLabelValues(mp.name, rejectionReason(err)).Inc()
	}
	mp.updateGauges()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrQueueFull):
		return "full"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrCanceled):
		return "canceled"
	case errors.Is(err, ErrInvalidState):
		return "state"
	default:
		return "other"
	}
}

func (mp *MetricsPool) updateGauges() {
	if !mp.enabled {
		return
	}
	mp.registry.PoolWorkers.WithLabelValues(mp.name).Set(float64(mp.Pool.WorkerCount()))
	mp.registry.PoolQueueDepth.WithLabelValues(mp.name).Set(float64(mp.Pool.QueueSize()))
	mp.registry.PoolActiveTasks.WithLabelValues(mp.name).Set(float64(mp.Pool.TaskCount() - mp.Pool.QueueSize()))
}

// EnableMetrics enables metrics collection.
func (mp *MetricsPool) EnableMetrics(config metrics.Config) error {
	mp.enabled = config.Enabled
	if config.Registry != nil {
		mp.registry = metrics.NewRegistry(config.Registry)
	}
	if mp.enabled {
		mp.updateGauges()
	}
	return nil
}

// DisableMetrics disables metrics collection.
func (mp *MetricsPool) DisableMetrics() {
	mp.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPool) MetricsEnabled() bool {
	return mp.enabled
}

// Registry returns the metrics registry the pool reports into.
func (mp *MetricsPool) Registry() *metrics.Registry {
	return mp.registry
}

// InstrumentAllocator decorates an Allocator with buffer churn counters
// reported under the given name.
func InstrumentAllocator(a Allocator, name string, registry *metrics.Registry) Allocator {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	return &countingAllocator{
		inner:    a,
		obtained: func() { registry.BuffersObtained.WithLabelValues(name).Inc() },
		recycled: func() { registry.BuffersRecycled.WithLabelValues(name).Inc() },
	}
}

type countingAllocator struct {
	inner    Allocator
	obtained func()
	recycled func()
}

func (c *countingAllocator) Get(n int) []byte {
	c.obtained()
	return c.inner.Get(n)
}

func (c *countingAllocator) Put(buf []byte) {
	c.recycled()
	c.inner.Put(buf)
}
