package pool

import (
	"fmt"

	cerrors "github.com/vnykmshr/sockpool/pkg/common/errors"
)

var (
	// ErrInvalidState indicates the pool is not in a state that permits
	// the requested operation.
	ErrInvalidState = fmt.Errorf("pool: invalid state: %w", cerrors.ErrClosed)

	// ErrQueueFull indicates the task queue reached its maximum size and
	// the rejection policy does not allow waiting.
	ErrQueueFull = fmt.Errorf("pool: queue full: %w", cerrors.ErrCapacityExceeded)

	// ErrTimeout indicates a submission wait expired before queue space
	// became available.
	ErrTimeout = fmt.Errorf("pool: submit wait expired: %w", cerrors.ErrTimeout)

	// ErrCanceled indicates the pool began shutting down while the
	// operation was in progress.
	ErrCanceled = fmt.Errorf("pool: operation canceled: %w", cerrors.ErrClosed)

	// ErrInvalidParameter indicates a nil task function or otherwise
	// unusable argument.
	ErrInvalidParameter = fmt.Errorf("pool: invalid parameter: %w", cerrors.ErrInvalidConfiguration)

	// ErrInvalidPolicy indicates an unknown rejection policy value.
	ErrInvalidPolicy = fmt.Errorf("pool: unknown rejection policy: %w", cerrors.ErrInvalidConfiguration)
)
