package storage

import (
	"context"
	"sync"
	"time"
)

// MockFileLock is an in-memory FileLock that records attempts.
type MockFileLock struct {
	mu     sync.Mutex
	locked bool

	// LockError is returned from TryLockContext when set.
	LockError error
	// Busy makes TryLockContext report the lock as held elsewhere.
	Busy bool

	LockAttempts   int
	UnlockAttempts int
}

func (m *MockFileLock) TryLockContext(_ context.Context, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LockAttempts++
	if m.LockError != nil {
		return false, m.LockError
	}
	if m.Busy || m.locked {
		return false, nil
	}
	m.locked = true
	return true, nil
}

func (m *MockFileLock) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UnlockAttempts++
	m.locked = false
	return nil
}

// IsLocked reports whether the lock is currently held.
func (m *MockFileLock) IsLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked
}

// MockFileLockFactory hands out one MockFileLock per path.
type MockFileLockFactory struct {
	mu    sync.Mutex
	locks map[string]*MockFileLock
}

// NewMockFileLockFactory returns an empty factory.
func NewMockFileLockFactory() *MockFileLockFactory {
	return &MockFileLockFactory{locks: make(map[string]*MockFileLock)}
}

func (f *MockFileLockFactory) New(path string) FileLock {
	return f.Lock(path)
}

// Lock returns the mock for path, creating it when missing.
func (f *MockFileLockFactory) Lock(path string) *MockFileLock {
	f.mu.Lock()
	defer f.mu.Unlock()

	lock, ok := f.locks[path]
	if !ok {
		lock = &MockFileLock{}
		f.locks[path] = lock
	}
	return lock
}
