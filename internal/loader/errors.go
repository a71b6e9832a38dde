package loader

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when a read is attempted before the
// dictionary reports ready. Callers must surface this rather than treat
// the dictionary as empty.
var ErrNotInitialized = errors.New("dictionary not initialized")

// PrefixLoadError records a prefix load that failed after exhausting
// retries. It carries enough context for a caller-driven retry.
type PrefixLoadError struct {
	Prefix   string
	Attempts int
	Err      error

	// Retry re-runs the failed load. Bound at construction time.
	Retry func(ctx context.Context) error
}

func (e *PrefixLoadError) Error() string {
	return fmt.Sprintf("failed to load prefix %q after %d attempts: %v", e.Prefix, e.Attempts, e.Err)
}

func (e *PrefixLoadError) Unwrap() error {
	return e.Err
}
