package router

import (
	"strings"

	"github.com/strada-dev/strada/pkg/location"
)

// Element is an opaque renderable produced by a route component. The engine
// never inspects it; rendering belongs to the host.
type Element any

// ElementFunc produces a route's element. Invoked by the host's renderer
// through the route context's outlet.
type ElementFunc func() Element

// Loader produces a route's data. It is invoked exactly once when the
// route's context is created; asynchronous loaders manage their own
// pending/error state and are not awaited by the engine.
type Loader func(args LoaderArgs) any

// LoaderArgs is what a Loader receives, bound to the route context that
// invoked it.
type LoaderArgs struct {
	// Params returns the route's current params. Reactive read.
	Params func() map[string]string

	// Location is the router's reactive location.
	Location *location.Location

	// Navigate issues a navigation from the loader's route. Returns the
	// fatal errors of the navigation surface (unroutable target, redirect
	// loop).
	Navigate NavigateFunc
}

// NavigateFunc is the navigation call surface handed to loaders and route
// contexts.
type NavigateFunc func(to string, opts ...NavigateOption) error

// NavigateOptions configures one navigation request.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Resolve resolves the target against the calling route's path.
	// Defaults to true.
	Resolve bool

	// Scroll controls whether the host scrolls to top after navigation.
	// Defaults to true.
	Scroll bool

	// State is the opaque navigation state forwarded to the host.
	State any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// DefaultNavigateOptions returns the option defaults applied by Navigate.
func DefaultNavigateOptions() NavigateOptions {
	return NavigateOptions{Resolve: true, Scroll: true}
}

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) { o.Replace = true }
}

// WithoutResolve resolves the target against the router base instead of the
// calling route's path.
func WithoutResolve() NavigateOption {
	return func(o *NavigateOptions) { o.Resolve = false }
}

// WithoutScroll disables scrolling to top after navigation.
func WithoutScroll() NavigateOption {
	return func(o *NavigateOptions) { o.Scroll = false }
}

// WithState attaches opaque state to the navigation.
func WithState(state any) NavigateOption {
	return func(o *NavigateOptions) { o.State = state }
}

// Definition is one node of the declarative route tree supplied by the
// application.
type Definition struct {
	// Path follows the pattern grammar in the package doc.
	Path string

	// Component produces the element rendered when this route matches.
	Component ElementFunc

	// Data is the route's data loader, if any.
	Data Loader

	// Preload is a best-effort resource warm-up hook, invoked once when
	// the route's context is created. Its outcome is not awaited.
	Preload func()

	// Children nest under this definition. A definition with children is
	// a prefix; only leaves terminate branches.
	Children []Definition
}

// Route is one compiled node of the definition tree. Immutable once built.
type Route struct {
	// OriginalPath is the definition's own path fragment.
	OriginalPath string

	// Pattern is the full joined pattern including ancestor prefixes. For
	// non-leaf routes it is truncated at the first wildcard marker.
	Pattern string

	// Element produces the route's renderable.
	Element ElementFunc

	// Preload is the route's warm-up hook, if any.
	Preload func()

	// Data is the route's data loader, if any.
	Data Loader

	// Matcher tests a location path against Pattern.
	Matcher MatcherFunc
}

// createRoute compiles one definition against its ancestor prefix.
func createRoute(def Definition, base string, fallback ElementFunc) *Route {
	isLeaf := len(def.Children) == 0

	path := JoinPaths(base, def.Path)
	pattern := path
	if !isLeaf {
		if i := strings.Index(path, "/*"); i >= 0 {
			pattern = path[:i]
		}
	}

	element := def.Component
	if element == nil {
		element = fallback
	}

	return &Route{
		OriginalPath: def.Path,
		Pattern:      pattern,
		Element:      element,
		Preload:      def.Preload,
		Data:         def.Data,
		Matcher:      CreateMatcher(pattern, !isLeaf),
	}
}
