package reactive

import (
	"sync"
	"sync/atomic"
)

// Cleanup is returned by an effect body and runs before the next re-run or
// on dispose.
type Cleanup func()

// Effect is a reactive side effect. It runs immediately on creation and
// re-runs whenever a signal or memo it read during its last run changes.
type Effect struct {
	id uint64

	// fn is the effect body.
	fn func() Cleanup

	// cleanup is the cleanup from the last run.
	cleanup Cleanup

	// sources are the cells this effect read during its last run.
	sources   []*cellBase
	sourcesMu sync.Mutex

	// running guards against re-entrant runs when the body writes cells
	// it also reads.
	running atomic.Bool

	// stale records a notification that arrived mid-run; the effect
	// re-runs once the current run finishes.
	stale atomic.Bool

	// disposed marks the effect as dead.
	disposed atomic.Bool
}

// NewEffect creates an effect and runs it once immediately.
func NewEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id: nextID(),
		fn: fn,
	}
	e.run()
	return e
}

// MarkDirty re-runs the effect. A notification arriving while the body is
// executing defers the re-run until the body returns.
// Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if e.running.Load() {
		e.stale.Store(true)
		return
	}
	e.run()
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// addSource records a cell read during the effect body.
// Implements the sourceTracker interface.
func (e *Effect) addSource(source *cellBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// run executes the effect body under tracking, repeating while
// notifications arrived mid-run.
func (e *Effect) run() {
	if e.running.Swap(true) {
		return
	}
	defer e.running.Store(false)

	for {
		if e.disposed.Load() {
			return
		}
		e.stale.Store(false)

		if e.cleanup != nil {
			e.cleanup()
			e.cleanup = nil
		}

		e.sourcesMu.Lock()
		for _, source := range e.sources {
			source.unsubscribe(e)
		}
		e.sources = e.sources[:0]
		e.sourcesMu.Unlock()

		old := setCurrentListener(e)
		e.cleanup = e.fn()
		setCurrentListener(old)

		if !e.stale.Load() {
			return
		}
	}
}

// Dispose stops the effect, runs its cleanup, and releases subscriptions.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

var _ sourceTracker = (*Effect)(nil)
