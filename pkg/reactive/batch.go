package reactive

// Batch groups signal updates into a single notification phase. Updates
// inside the batch queue their notifications; when the outermost batch
// completes, the queued listeners are deduplicated and notified once.
//
// Batches nest; notifications only fire when the outermost batch completes.
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

// processPendingUpdates deduplicates and notifies all pending listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, listener := range updates {
		id := listener.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		listener.MarkDirty()
	}
}

// Untracked runs fn without tracking reads as dependencies.
// For a single read, Peek is cheaper and clearer.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// UntrackedGet reads a signal's value without creating a dependency.
func UntrackedGet[T any](s *Signal[T]) T {
	return s.Peek()
}
