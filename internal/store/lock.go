package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	// DefaultLockTimeout bounds how long a mutating operation waits for
	// the advisory lock before failing with ErrLockTimeout.
	DefaultLockTimeout = 5 * time.Second

	lockRetryDelay = 50 * time.Millisecond
)

// acquire takes the exclusive advisory lock covering both the log file and
// the counter state. It returns a release function that must be deferred so
// the lock is dropped on every exit path. The lock is never re-entered and
// never held across user interaction; one call, one critical section.
func (s *Store) acquire(ctx context.Context) (release func(), err error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	flk := flock.New(s.lockPath)
	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err := flk.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("acquire lock %s: %w", s.lockPath, err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}
	return func() { _ = flk.Unlock() }, nil
}
