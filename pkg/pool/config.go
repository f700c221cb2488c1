package pool

import (
	"fmt"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vnykmshr/sockpool/pkg/common/validation"
)

// Policy controls what Submit does when the task queue is full.
type Policy int

const (
	// CallFail rejects the submission immediately with ErrQueueFull.
	CallFail Policy = iota

	// WaitFor blocks the submitter until queue space frees up or the
	// submission deadline expires.
	WaitFor

	// CallerRun executes the task synchronously on the submitting
	// goroutine instead of queueing it.
	CallerRun
)

// String returns the lowercase wire name of the policy.
func (p Policy) String() string {
	switch p {
	case CallFail:
		return "call_fail"
	case WaitFor:
		return "wait_for"
	case CallerRun:
		return "caller_run"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy converts a wire name back into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "call_fail":
		return CallFail, nil
	case "wait_for":
		return WaitFor, nil
	case "caller_run":
		return CallerRun, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (p Policy) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Policy) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Config holds worker pool configuration.
//
// Workers follows the sizing convention of the pool: 0 selects a default
// based on the number of CPUs, a negative value -n selects n workers per
// CPU, and a positive value is used as given.
type Config struct {
	// Workers is the requested worker count.
	Workers int `yaml:"workers"`

	// MaxQueueSize caps the number of queued tasks. 0 means unbounded.
	MaxQueueSize int `yaml:"max_queue_size"`

	// Policy selects the behavior when the queue is full.
	Policy Policy `yaml:"policy"`

	// PanicHandler, if set, is invoked with the task argument and the
	// recovered value when a task panics. When nil, panics propagate
	// and crash the process.
	PanicHandler func(arg, recovered any) `yaml:"-"`

	// OnTaskDone, if set, is invoked after each task finishes with the
	// task argument and the execution duration.
	OnTaskDone func(arg any, d time.Duration) `yaml:"-"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:      0,
		MaxQueueSize: 0,
		Policy:       CallFail,
	}
}

// ParseConfig decodes a YAML document into a Config, applying defaults
// for omitted fields.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("pool: parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := validation.ValidateNonNegative("pool", "max_queue_size", float64(c.MaxQueueSize)); err != nil {
		return err
	}
	if c.Policy < CallFail || c.Policy > CallerRun {
		return fmt.Errorf("%w: %d", ErrInvalidPolicy, int(c.Policy))
	}
	return nil
}

// normalizeWorkers resolves the Workers convention into a concrete count.
func normalizeWorkers(n int) int {
	switch {
	case n > 0:
		return n
	case n < 0:
		return runtime.NumCPU() * -n
	default:
		def := 2 * runtime.GOMAXPROCS(0)
		if def > 32 {
			def = 32
		}
		return def
	}
}
