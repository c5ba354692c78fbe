package signal

import "sync"

// Versioned is anything that can report a change counter. Cells satisfy it;
// composite inputs can implement it to participate in memoization.
type Versioned interface {
	Version() uint64
}

// Memo caches a derived computation and recomputes it only when one of its
// versioned dependencies changed since the last read. With no dependencies
// declared the memo recomputes on every read, which keeps it safe (never
// stale) for inputs that cannot report versions.
type Memo[T any] struct {
	mu     sync.Mutex
	deps   []Versioned
	fn     func() T
	seen   []uint64
	cached T
	valid  bool
}

// NewMemo builds a memo over fn with the given dependencies.
func NewMemo[T any](fn func() T, deps ...Versioned) *Memo[T] {
	return &Memo[T]{fn: fn, deps: deps, seen: make([]uint64, len(deps))}
}

// Get returns the derived value, recomputing if any dependency moved.
func (m *Memo[T]) Get() T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.deps) == 0 {
		return m.fn()
	}

	dirty := !m.valid
	for i, dep := range m.deps {
		if v := dep.Version(); v != m.seen[i] {
			m.seen[i] = v
			dirty = true
		}
	}
	if dirty {
		m.cached = m.fn()
		m.valid = true
	}
	return m.cached
}

// Source exposes the memo as a Source.
func (m *Memo[T]) Source() Source[T] {
	return m.Get
}
