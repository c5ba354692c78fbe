package signal

import "sync"

// Cell is a mutable value with a monotonically increasing version stamp. The
// version lets derived computations detect staleness without comparing
// values, which keeps memoization cheap for values that are not comparable.
type Cell[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
}

// NewCell creates a cell seeded with the given value at version 1.
func NewCell[T any](value T) *Cell[T] {
	return &Cell[T]{value: value, version: 1}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the value and bumps the version. Every Set counts as a change;
// the cell does not attempt deep equality on the stored value.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.version++
}

// Version returns the current version stamp.
func (c *Cell[T]) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Snapshot returns value and version in one lock acquisition so callers can
// observe a consistent pair.
func (c *Cell[T]) Snapshot() (T, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.version
}

// Source exposes the cell as a read-only Source.
func (c *Cell[T]) Source() Source[T] {
	return func() T { return c.Get() }
}
