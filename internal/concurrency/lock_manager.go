package concurrency

import (
	"context"
	"sync"
)

// LockManager hands out one lock per key. Keys never contend with each other.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// keyLock is a mutex that can be acquired with a deadline
type keyLock chan struct{}

func (lm *LockManager) get(key string) keyLock {
	l, _ := lm.locks.LoadOrStore(key, make(keyLock, 1))
	return l.(keyLock)
}

// Acquire blocks until the lock for key is held or ctx is done.
// The returned function releases the lock and must be called exactly once.
func (lm *LockManager) Acquire(ctx context.Context, key string) (func(), error) {
	l := lm.get(key)
	select {
	case l <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-l }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// WithLock runs fn while holding the lock for key
func (lm *LockManager) WithLock(ctx context.Context, key string, fn func() error) error {
	release, err := lm.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}
