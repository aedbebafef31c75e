// Package history provides host integrations for the navigation engine: a
// reactive location source plus a setter accepting committed location
// changes. Implementations exist for in-memory history, server requests,
// and a WebSocket-driven browser client.
package history

// LocationChange is the unit of navigation intent and of host
// synchronization: a raw path value, opaque state, and the history
// semantics to apply when committing.
type LocationChange struct {
	// Value is the raw location path, including search and hash.
	Value string

	// State is opaque navigation state carried alongside the path.
	State any

	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Scroll tells the host to scroll to top after the change applies.
	Scroll bool
}

// Source is the host integration contract: a reactive location and a setter
// for committed changes.
type Source interface {
	// Location returns the current raw location. Reactive read: the
	// engine's reconciliation effect re-runs when it changes.
	Location() LocationChange

	// SetLocation applies a committed location change to the host.
	SetLocation(change LocationChange)
}

// Goer is an optional capability: relative history traversal. Sources
// without it degrade relative navigation to a logged warning.
type Goer interface {
	Go(delta int)
}

// PathRenderer is an optional capability: rewriting resolved paths for link
// text (e.g. hash-mode hosts prefixing "#").
type PathRenderer interface {
	RenderPath(path string) string
}
