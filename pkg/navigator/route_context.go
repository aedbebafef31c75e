package navigator

import (
	"github.com/strada-dev/strada/internal/errors"
	"github.com/strada-dev/strada/pkg/reactive"
	"github.com/strada-dev/strada/pkg/router"
)

// RouteContext is the live node wired to one matched route: its reactive
// params and path, its nested outlet, the result of its data loader, and
// path resolution relative to the router base.
//
// Contexts form a chain mirroring the matched branch. The parent link is a
// back-reference used only for upward lookup; the child is a lazily
// resolved forward reference into the router's context table, so a context
// never owns its neighbors.
type RouteContext struct {
	router *Router
	parent *RouteContext

	// index is this context's position in the matched chain; -1 for the
	// base context.
	index int

	route   *router.Route
	pattern string

	path   *reactive.Memo[string]
	params *reactive.Memo[map[string]string]

	outlet router.ElementFunc
	data   any
}

// newBaseContext builds the root context representing the router's base
// path. It matches nothing and loads nothing; it exists so navigation and
// path resolution have a well-defined origin.
func newBaseContext(r *Router) *RouteContext {
	base := r.basePath
	return &RouteContext{
		router:  r,
		index:   -1,
		pattern: base,
		path:    reactive.NewMemo(func() string { return base }),
		params:  reactive.NewMemo(func() map[string]string { return map[string]string{} }),
	}
}

// createRouteContext wires a context to the match at the given chain
// position. The route's preload hook fires here, best-effort; the data
// loader is invoked exactly once, bound to this context.
func createRouteContext(r *Router, parent *RouteContext, index int) *RouteContext {
	match := r.matchAt(index)
	route := match.Route

	path := reactive.NewMemo(func() string {
		return r.matchAt(index).Path
	}).WithEquals(func(a, b string) bool { return a == b })
	// Params re-derive only when the matched path changes. Param values are
	// substrings of the matched path, so an unchanged path implies unchanged
	// params; the untracked match read keeps path the sole dependency.
	params := reactive.NewMemo(func() map[string]string {
		_ = path.Get()
		var p map[string]string
		reactive.Untracked(func() {
			p = r.matchAt(index).Params
		})
		return p
	})

	rc := &RouteContext{
		router:  r,
		parent:  parent,
		index:   index,
		route:   route,
		pattern: route.Pattern,
		path:    path,
		params:  params,
		outlet:  route.Element,
	}

	// Hooks run untracked: a loader's reads must not subscribe the
	// reconciliation effect that is creating this context.
	if route.Preload != nil || route.Data != nil {
		reactive.Untracked(func() {
			if route.Preload != nil {
				route.Preload()
			}
			if route.Data != nil {
				rc.data = route.Data(router.LoaderArgs{
					Params:   rc.Params,
					Location: r.location,
					Navigate: rc.Navigate,
				})
			}
		})
	}

	return rc
}

// release drops the context's derivations from the cells they read. The
// matches memo outlives every context, so a context dropped from the chain
// must release or its memos stay subscribed for the router's lifetime.
func (rc *RouteContext) release() {
	rc.path.Dispose()
	rc.params.Dispose()
}

// Pattern returns the route's full joined pattern.
func (rc *RouteContext) Pattern() string { return rc.pattern }

// Route returns the compiled route this context is wired to; nil for the
// base context.
func (rc *RouteContext) Route() *router.Route { return rc.route }

// Path returns the sub-path this route matched. Reactive read.
func (rc *RouteContext) Path() string { return rc.path.Get() }

// Params returns the route's extracted params. Reactive read.
func (rc *RouteContext) Params() map[string]string { return rc.params.Get() }

// Data returns the result of the route's data loader, if any.
func (rc *RouteContext) Data() any {
	if rc.data != nil {
		return rc.data
	}
	if rc.parent != nil {
		return rc.parent.Data()
	}
	return nil
}

// Parent returns the enclosing context; nil above the base.
func (rc *RouteContext) Parent() *RouteContext { return rc.parent }

// Child resolves the nested context, or nil when this route is the leaf.
// The reference is resolved lazily against the router's current chain.
func (rc *RouteContext) Child() *RouteContext {
	next := rc.index + 1
	if next < len(rc.router.contexts) {
		return rc.router.contexts[next]
	}
	return nil
}

// Outlet returns the route's element producer for the host to render; nil
// when the route has no component.
func (rc *RouteContext) Outlet() router.ElementFunc { return rc.outlet }

// ResolvePath resolves a target relative to this context's matched path,
// scoped under the router's base path.
func (rc *RouteContext) ResolvePath(to string) (string, bool) {
	return router.ResolvePath(rc.router.basePath, to, rc.path.Peek())
}

// Href resolves a target for link text, applying the host's path renderer
// when it provides one. Returns a fatal error for unroutable targets.
func (rc *RouteContext) Href(to string) (string, error) {
	resolved, ok := rc.ResolvePath(to)
	if !ok {
		return "", errors.UnroutablePath(to)
	}
	if rc.router.renderPath != nil {
		return rc.router.renderPath(resolved), nil
	}
	return resolved, nil
}

// Navigate issues a navigation from this route. Relative targets resolve
// against this context's matched path unless WithoutResolve is given.
func (rc *RouteContext) Navigate(to string, opts ...router.NavigateOption) error {
	return rc.router.navigateFromRoute(rc, to, opts)
}
