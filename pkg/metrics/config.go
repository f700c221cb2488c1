package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds configuration for metrics collection.
type Config struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool

	// Registry is the Prometheus registry to register metrics with.
	// When nil the shared default registry is used, which reports into
	// prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Namespace names the metrics namespace. NewRegistry does not read
	// it: the metric families it creates always use the "sockpool"
	// namespace.
	Namespace string
}

// DefaultConfig returns a default metrics configuration reporting into
// the shared default registry.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Registry:  nil,
		Namespace: "sockpool",
	}
}

// Instrumentable is an interface for components that can be instrumented with metrics.
type Instrumentable interface {
	// EnableMetrics enables metrics collection for this component.
	EnableMetrics(config Config) error

	// DisableMetrics disables metrics collection for this component.
	DisableMetrics()

	// MetricsEnabled returns true if metrics are currently enabled.
	MetricsEnabled() bool
}
