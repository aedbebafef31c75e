package history

import (
	"net/http"
	"sync"
)

// RequestSource adapts one server request into a location source. The
// location is fixed for the request's lifetime; committed changes are
// recorded so the host can relay a redirect. No relative traversal.
type RequestSource struct {
	change LocationChange

	mu       sync.Mutex
	recorded []LocationChange
}

// NewRequestSource builds a source from an HTTP request's URL.
func NewRequestSource(r *http.Request) *RequestSource {
	value := r.URL.Path
	if r.URL.RawQuery != "" {
		value += "?" + r.URL.RawQuery
	}
	return &RequestSource{change: LocationChange{Value: value}}
}

// NewPathSource builds a source from a raw path string.
func NewPathSource(path string, state any) *RequestSource {
	return &RequestSource{change: LocationChange{Value: path, State: state}}
}

// Location returns the request's location.
func (s *RequestSource) Location() LocationChange {
	return s.change
}

// SetLocation records the committed change for the host to inspect.
func (s *RequestSource) SetLocation(change LocationChange) {
	s.mu.Lock()
	s.recorded = append(s.recorded, change)
	s.mu.Unlock()
}

// Recorded returns the changes committed during this request, in order.
func (s *RequestSource) Recorded() []LocationChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LocationChange, len(s.recorded))
	copy(out, s.recorded)
	return out
}

var _ Source = (*RequestSource)(nil)
