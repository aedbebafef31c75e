package reactive

import "sync/atomic"

// Listener is anything that can be notified when a cell it read changes.
// Memos and Effects implement it.
type Listener interface {
	// MarkDirty tells the listener one of its sources changed.
	MarkDirty()

	// ID returns a stable identifier used to deduplicate notifications.
	ID() uint64
}

// idCounter generates unique IDs for signals, memos, and effects.
var idCounter atomic.Uint64

// nextID returns the next unique cell identifier.
func nextID() uint64 {
	return idCounter.Add(1)
}
