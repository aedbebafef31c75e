// Package strada provides the public API for the Strada routing engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/strada-dev/strada"
//
// Usage:
//
//	r, err := strada.New([]strada.Definition{
//	    {Path: "/", Component: home},
//	    {Path: "/users/:id", Component: user, Data: loadUser},
//	}, strada.Options{})
//	if err != nil {
//	    return err
//	}
//	err = r.Navigate("/users/42")
package strada

import (
	"github.com/strada-dev/strada/pkg/history"
	"github.com/strada-dev/strada/pkg/navigator"
	"github.com/strada-dev/strada/pkg/reactive"
	"github.com/strada-dev/strada/pkg/router"
)

// =============================================================================
// Engine
// =============================================================================

// Router is the navigation engine for one mounted route tree.
type Router = navigator.Router

// Options configures a Router.
type Options = navigator.Options

// Output is the server-mode sink inspected after rendering.
type Output = navigator.Output

// RouteContext is the live node wired to one matched route.
type RouteContext = navigator.RouteContext

// MaxRedirects bounds the pending redirect chain of one navigation burst.
const MaxRedirects = navigator.MaxRedirects

// New compiles the definition tree and builds the engine around it.
var New = navigator.New

// =============================================================================
// Route tree
// =============================================================================

// Definition is one node of the declarative route tree.
type Definition = router.Definition

// Route is one compiled node of the definition tree.
type Route = router.Route

// Match is the result of matching one route of a branch.
type Match = router.Match

// Element is an opaque renderable produced by a route component.
type Element = router.Element

// ElementFunc produces a route's element.
type ElementFunc = router.ElementFunc

// Loader produces a route's data, invoked once per route context.
type Loader = router.Loader

// LoaderArgs is what a Loader receives.
type LoaderArgs = router.LoaderArgs

// =============================================================================
// Navigation options
// =============================================================================

// NavigateOption configures a navigation request.
type NavigateOption = router.NavigateOption

// WithReplace replaces the current history entry instead of pushing.
var WithReplace = router.WithReplace

// WithoutResolve resolves the target against the router base instead of the
// calling route's path.
var WithoutResolve = router.WithoutResolve

// WithoutScroll disables scrolling to top after navigation.
var WithoutScroll = router.WithoutScroll

// WithState attaches opaque state to the navigation.
var WithState = router.WithState

// =============================================================================
// Host integrations
// =============================================================================

// Source is the host integration contract.
type Source = history.Source

// LocationChange is the unit of navigation intent.
type LocationChange = history.LocationChange

// NewMemorySource creates an in-memory history.
var NewMemorySource = history.NewMemorySource

// NewRequestSource adapts one server request into a location source.
var NewRequestSource = history.NewRequestSource

// NewPathSource builds a source from a raw path string.
var NewPathSource = history.NewPathSource

// NewWebSocketSource drives a browser's history over a WebSocket connection.
var NewWebSocketSource = history.NewWebSocketSource

// =============================================================================
// Reactive primitives
// =============================================================================

// Effect is a reactive side effect.
type Effect = reactive.Effect

// Cleanup runs before an effect's next re-run or on dispose.
type Cleanup = reactive.Cleanup

// NewEffect creates an effect and runs it once immediately.
var NewEffect = reactive.NewEffect

// Batch coalesces notifications from several writes into one propagation.
var Batch = reactive.Batch

// Untracked runs fn without subscribing the current listener.
var Untracked = reactive.Untracked

// NewSignal creates a new reactive value container.
func NewSignal[T any](initial T) *reactive.Signal[T] {
	return reactive.NewSignal(initial)
}

// NewMemo creates a cached reactive computation.
func NewMemo[T any](compute func() T) *reactive.Memo[T] {
	return reactive.NewMemo(compute)
}
