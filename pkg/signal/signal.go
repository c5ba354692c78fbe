// Package signal provides the minimal reactive primitives the rest of the
// module is built on: a Source abstraction over "static value or live
// accessor", mutable cells with version stamps, and version-driven memos.
//
// All ordering guarantees assume a single goroutine driving reads and writes.
// Cells take a mutex so incidental cross-goroutine access does not race, but
// the module is not designed for concurrent mutation.
package signal

// Source is a zero-argument accessor yielding the current value of some
// input. Every tunable in this module (strategy, submitted status, field
// state) is consumed through a Source so callers can supply either a constant
// or a live reactive value without downstream code caring which.
type Source[T any] func() T

// Static wraps a constant into a Source.
func Static[T any](value T) Source[T] {
	return func() T { return value }
}

// Compute adapts an arbitrary function into a Source.
func Compute[T any](fn func() T) Source[T] {
	return Source[T](fn)
}

// Resolve unwraps a Source to its current value. A nil Source yields the zero
// value, keeping degraded inputs fail-open instead of panicking.
func Resolve[T any](src Source[T]) T {
	if src == nil {
		var zero T
		return zero
	}
	return src()
}

// Of normalises the three input shapes resolution functions accept: a plain
// value, a func() T, or an existing Source. Anything else yields the zero
// value.
func Of[T any](input any) Source[T] {
	switch v := input.(type) {
	case nil:
		return Static(*new(T))
	case T:
		return Static(v)
	case func() T:
		return Source[T](v)
	case Source[T]:
		return v
	case *Cell[T]:
		return v.Source()
	default:
		return Static(*new(T))
	}
}
