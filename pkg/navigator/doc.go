// Package navigator is the navigation engine: it owns the authoritative
// reference location, mediates navigation requests, collapses synchronous
// redirect chains, guards against redirect loops, and keeps the reactive
// location converged with the host integration in both directions.
//
// A navigation request moves through idle → requested → transitioning →
// committed, collapsed, or aborted. Requests issued synchronously within
// one burst append to the referrer chain in call order; only the final
// request commits to the host, carrying the first request's replace and
// scroll intent. In server mode there is no transition: the navigation is
// applied synchronously and recorded into the output sink.
package navigator
