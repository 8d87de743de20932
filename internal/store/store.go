// Package store provides the durable key-value persistence layer. Every state
// collection lives in its own key and is changed only through an atomic
// read-modify-write.
package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNoChange may be returned by an UpdateFunc to leave the stored value untouched.
var ErrNoChange = errors.New("store: no change")

// ErrConflict is returned when an optimistic update kept losing to concurrent writers.
var ErrConflict = errors.New("store: too many concurrent update conflicts")

// UpdateFunc computes the next value of a key from its current value. exists is
// false when the key has never been written. Backends may call it more than once
// for a single Update, so it must not have side effects.
type UpdateFunc func(current []byte, exists bool) ([]byte, error)

// Store is a durable key-value store with per-key atomic read-modify-write.
// There is no cross-key transaction.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Name() string
}

// keyLocks serializes writers to the same key inside one process.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyLocks) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
