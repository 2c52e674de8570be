package storage

import "sync"

// OperationType tells the LockManager which lock an operation needs.
type OperationType int

const (
	// ReadOperation takes the shared lock; reads run concurrently.
	ReadOperation OperationType = iota

	// WriteOperation takes the exclusive lock.
	WriteOperation
)

// LockManager serializes access to in-process state with a RWMutex.
// Every backend and the todo store route their critical sections through
// Execute so the lock/unlock pairing lives in one place.
type LockManager struct {
	mu sync.RWMutex
}

// NewLockManager returns a ready-to-use LockManager.
func NewLockManager() *LockManager {
	return &LockManager{}
}

// Execute runs fn while holding the lock matching opType.
// The lock is released when fn returns, including on panic.
//
// Example:
//
//	err := lm.Execute(storage.WriteOperation, func() error {
//	    items[key] = value
//	    return nil
//	})
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	default:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}
