package pool

import (
	"errors"
	"testing"

	"github.com/vnykmshr/sockpool/internal/testutil"
	cerrors "github.com/vnykmshr/sockpool/pkg/common/errors"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
workers: 8
max_queue_size: 500
policy: wait_for
`))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Workers, 8)
	testutil.AssertEqual(t, cfg.MaxQueueSize, 500)
	testutil.AssertEqual(t, cfg.Policy, WaitFor)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`workers: 2`))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.MaxQueueSize, 0)
	testutil.AssertEqual(t, cfg.Policy, CallFail)
}

func TestParseConfigUnknownPolicy(t *testing.T) {
	_, err := ParseConfig([]byte(`policy: drop_newest`))
	if !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("unknown policy: got %v, want ErrInvalidPolicy", err)
	}
}

func TestParseConfigNegativeQueue(t *testing.T) {
	_, err := ParseConfig([]byte(`max_queue_size: -5`))
	if !errors.Is(err, cerrors.ErrInvalidConfiguration) {
		t.Fatalf("negative queue: got %v, want ErrInvalidConfiguration", err)
	}
}

func TestPolicyRoundTrip(t *testing.T) {
	for _, p := range []Policy{CallFail, WaitFor, CallerRun} {
		parsed, err := ParsePolicy(p.String())
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, parsed, p)
	}
	if _, err := ParsePolicy("bogus"); !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("bogus policy: got %v, want ErrInvalidPolicy", err)
	}
}
