package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a cached computation that tracks its own dependencies.
// It recomputes lazily: invalidation marks it dirty, the next Get runs the
// computation. If several sources change before a read, it recomputes once.
//
// A Memo is also a cell: reading it subscribes the current listener, so
// chains of derived values propagate invalidation downstream.
type Memo[T any] struct {
	base cellBase

	// compute produces the memo's value.
	compute func() T

	// value is the cached computed value.
	value   T
	valueMu sync.RWMutex

	// valid reports whether the cached value is current.
	valid atomic.Bool

	// sources are the cells this memo read during its last computation.
	sources   []*cellBase
	sourcesMu sync.Mutex

	// equal determines whether a recomputation changed the value.
	equal func(T, T) bool

	// computing guards against re-entrant recomputation on cycles.
	computing atomic.Bool

	// disposed marks the memo as dead.
	disposed atomic.Bool
}

// NewMemo creates a memo. The computation runs lazily on first Get.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		base:    cellBase{id: nextID()},
		compute: compute,
	}
}

// Get returns the memo's value, recomputing if invalid, and subscribes the
// current listener.
func (m *Memo[T]) Get() T {
	m.base.track()

	if !m.valid.Load() {
		m.recompute()
	}

	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// Peek returns the value without subscribing. Still recomputes if invalid.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() {
		m.recompute()
	}
	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// MarkDirty invalidates the memo and propagates to subscribers. With an
// equality function set, the memo recomputes eagerly instead and notifies
// only when the value actually changed, cutting propagation short.
// Implements the Listener interface.
func (m *Memo[T]) MarkDirty() {
	if m.disposed.Load() {
		return
	}
	if !m.valid.CompareAndSwap(true, false) {
		return
	}
	if m.equal == nil {
		m.base.notifySubscribers()
		return
	}

	m.valueMu.RLock()
	old := m.value
	m.valueMu.RUnlock()

	m.recompute()

	m.valueMu.RLock()
	next := m.value
	m.valueMu.RUnlock()

	if !m.equal(old, next) {
		m.base.notifySubscribers()
	}
}

// ID returns the unique identifier for this memo.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

// WithEquals configures a change-cutoff equality function and returns the
// memo. See MarkDirty.
func (m *Memo[T]) WithEquals(fn func(T, T) bool) *Memo[T] {
	m.equal = fn
	return m
}

// addSource records a cell read during computation.
// Implements the sourceTracker interface.
func (m *Memo[T]) addSource(source *cellBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()

	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
}

// recompute runs the computation under tracking and caches the result.
func (m *Memo[T]) recompute() {
	if m.disposed.Load() {
		return
	}
	if m.computing.Swap(true) {
		// Circular dependency; keep the stale value.
		return
	}
	defer m.computing.Store(false)

	// Drop old sources; the computation re-subscribes to what it reads now.
	m.sourcesMu.Lock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	old := setCurrentListener(m)
	newValue := m.compute()
	setCurrentListener(old)

	m.valueMu.Lock()
	m.value = newValue
	m.valueMu.Unlock()

	m.valid.Store(true)
}

// Dispose stops the memo and releases its subscriptions. A disposed memo
// keeps returning its last cached value. Sources that outlive their readers
// (derivations dropped while the cells they read stay alive) must be
// disposed or they are retained by their sources indefinitely.
func (m *Memo[T]) Dispose() {
	if m.disposed.Swap(true) {
		return
	}

	m.sourcesMu.Lock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = nil
	m.sourcesMu.Unlock()
}

var _ sourceTracker = (*Memo[int])(nil)
