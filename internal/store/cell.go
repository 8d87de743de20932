package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Cell is a typed view of one key. Values are stored as JSON.
type Cell[V any] struct {
	store        Store
	key          string
	defaultValue func() V
}

// NewCell binds key in s to type V. defaultValue supplies the value of a key
// that was never written; nil means the zero value.
func NewCell[V any](s Store, key string, defaultValue func() V) *Cell[V] {
	if defaultValue == nil {
		defaultValue = func() V {
			var zero V
			return zero
		}
	}
	return &Cell[V]{store: s, key: key, defaultValue: defaultValue}
}

// Key returns the key this cell is bound to.
func (c *Cell[V]) Key() string {
	return c.key
}

// Get returns the last written value or the default.
func (c *Cell[V]) Get(ctx context.Context) (V, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		var zero V
		return zero, err
	}
	return c.decode(raw, ok)
}

// Set atomically replaces the stored value with updater(current) and returns it.
func (c *Cell[V]) Set(ctx context.Context, updater func(V) V) (V, error) {
	return c.Modify(ctx, func(current V) (V, bool) {
		return updater(current), true
	})
}

// Modify is Set with an opt-out: when updater reports false nothing is written
// and the current value is returned.
func (c *Cell[V]) Modify(ctx context.Context, updater func(V) (V, bool)) (V, error) {
	var result V
	err := c.store.Update(ctx, c.key, func(raw []byte, ok bool) ([]byte, error) {
		current, err := c.decode(raw, ok)
		if err != nil {
			return nil, err
		}
		next, changed := updater(current)
		result = next
		if !changed {
			return nil, ErrNoChange
		}
		encoded, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", c.key, err)
		}
		return encoded, nil
	})
	if err != nil && !errors.Is(err, ErrNoChange) {
		var zero V
		return zero, err
	}
	return result, nil
}

func (c *Cell[V]) decode(raw []byte, ok bool) (V, error) {
	if !ok || len(raw) == 0 {
		return c.defaultValue(), nil
	}
	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return v, nil
}
