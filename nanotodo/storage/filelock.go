package storage

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock is a cross-process exclusive lock.
type FileLock interface {
	// TryLockContext retries every retryInterval until the lock is taken or ctx ends.
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// FileLockFactory builds a FileLock for a lock file path.
type FileLockFactory interface {
	New(path string) FileLock
}

// FlockFactory produces locks backed by github.com/gofrs/flock.
type FlockFactory struct{}

// New returns a flock on path. The file is created on first lock.
func (FlockFactory) New(path string) FileLock {
	return flock.New(path)
}
