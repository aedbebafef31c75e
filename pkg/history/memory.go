package history

import (
	"sync"

	"github.com/strada-dev/strada/pkg/reactive"
)

// MemorySource is an in-memory history: a push/replace stack with an index
// cursor. It backs tests, non-browser hosts, and the engine's default when
// no integration is supplied. Supports relative traversal.
type MemorySource struct {
	mu      sync.Mutex
	entries []LocationChange
	index   int

	current *reactive.Signal[LocationChange]
}

// NewMemorySource creates a memory history positioned at "/".
func NewMemorySource() *MemorySource {
	initial := LocationChange{Value: "/"}
	return &MemorySource{
		entries: []LocationChange{initial},
		current: reactive.NewSignal(initial),
	}
}

// Location returns the current entry. Reactive read.
func (s *MemorySource) Location() LocationChange {
	return s.current.Get()
}

// SetLocation pushes or replaces the current entry. A push discards any
// forward entries, the way a browser history does.
func (s *MemorySource) SetLocation(change LocationChange) {
	s.mu.Lock()
	if change.Replace {
		s.entries[s.index] = change
	} else {
		s.entries = append(s.entries[:s.index+1], change)
		s.index++
	}
	s.mu.Unlock()

	s.current.Set(change)
}

// Go moves the cursor by delta, clamped to the stack bounds, and publishes
// the entry it lands on. Implements the Goer capability.
func (s *MemorySource) Go(delta int) {
	s.mu.Lock()
	s.index += delta
	if s.index < 0 {
		s.index = 0
	}
	if s.index > len(s.entries)-1 {
		s.index = len(s.entries) - 1
	}
	entry := s.entries[s.index]
	s.mu.Unlock()

	s.current.Set(entry)
}

// Entries returns a copy of the history stack. Test and debug helper.
func (s *MemorySource) Entries() []LocationChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LocationChange, len(s.entries))
	copy(out, s.entries)
	return out
}

var _ Source = (*MemorySource)(nil)
var _ Goer = (*MemorySource)(nil)
