package navigator

import (
	"context"
	"log/slog"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/strada-dev/strada/internal/errors"
	"github.com/strada-dev/strada/pkg/history"
	"github.com/strada-dev/strada/pkg/location"
	"github.com/strada-dev/strada/pkg/metrics"
	"github.com/strada-dev/strada/pkg/reactive"
	"github.com/strada-dev/strada/pkg/router"
)

// MaxRedirects bounds the pending redirect chain of one navigation burst.
// Reaching it fails the navigation fatally.
const MaxRedirects = 100

const tracerName = "strada/navigator"

// Options configures a Router.
type Options struct {
	// Base scopes the whole route tree under a path prefix.
	Base string

	// Source is the host integration. nil selects an in-memory history.
	Source history.Source

	// Fallback supplies the element producer for definitions without a
	// component.
	Fallback router.ElementFunc

	// Logger receives parse reports and capability warnings.
	// nil means slog.Default().
	Logger *slog.Logger

	// Metrics receives engine instrumentation. Optional.
	Metrics *metrics.Metrics

	// Tracer overrides the default otel tracer. Optional.
	Tracer trace.Tracer

	// Server selects the non-interactive mode: navigations apply
	// synchronously and are recorded into the output sink. The redirect
	// bound counts every server-mode navigation over the engine's
	// lifetime, matching its per-request use.
	Server bool
}

// Output is the server-mode sink the host inspects after rendering to
// detect a redirect.
type Output struct {
	// URL is the final resolved location of a server-side navigation.
	// Empty when no navigation occurred.
	URL string

	// Matches are the route matches for the request's location.
	Matches []router.Match
}

// Router is the navigation engine for one mounted route tree. Create it
// with New; it is owned by a single goroutine (the host's render loop).
type Router struct {
	source     history.Source
	goer       history.Goer
	renderPath func(string) string

	basePath string
	branches []*router.Branch

	reference *reactive.Signal[string]
	state     *reactive.Signal[any]
	location  *location.Location
	matches   *reactive.Memo[[]router.Match]

	scheduler *reactive.Scheduler
	referrers []history.LocationChange

	base     *RouteContext
	contexts []*RouteContext

	server     bool
	serverHops int
	out        *Output

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	syncEffect    *reactive.Effect
	treeEffect    *reactive.Effect
	routingEffect *reactive.Effect
}

// New compiles the definition tree and builds the engine around it.
// Returns a fatal configuration error for an unresolvable base path.
func New(defs []router.Definition, opts Options) (*Router, error) {
	basePath, ok := router.ResolvePath("", opts.Base, "")
	if !ok {
		return nil, errors.InvalidBase(opts.Base)
	}

	source := opts.Source
	if source == nil {
		source = history.NewMemorySource()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	r := &Router{
		source:    source,
		basePath:  basePath,
		scheduler: reactive.NewScheduler(),
		server:    opts.Server,
		logger:    logger,
		metrics:   opts.Metrics,
		tracer:    tracer,
	}

	// Optional host capabilities.
	if goer, ok := source.(history.Goer); ok {
		r.goer = goer
	}
	if pr, ok := source.(history.PathRenderer); ok {
		r.renderPath = pr.RenderPath
	}

	// Seed an unpositioned source so the first match happens under the base.
	if v := source.Location().Value; basePath != "/" && (v == "" || v == "/") {
		source.SetLocation(history.LocationChange{Value: basePath, Replace: true, Scroll: false})
	}

	initial := source.Location()
	r.reference = reactive.NewSignal(initial.Value)
	r.state = reactive.NewSignal(initial.State)
	r.location = location.New(r.reference.Get, r.state.Get, logger, r.metrics.RecordParseError)

	r.branches = router.CreateBranches(defs, basePath, opts.Fallback)
	r.matches = reactive.NewMemo(func() []router.Match {
		return router.GetRouteMatches(r.branches, r.location.Pathname())
	})

	r.base = newBaseContext(r)

	if r.server {
		r.out = &Output{Matches: r.matches.Peek()}
	}

	r.setupTree()

	// Adopt out-of-band source changes (back/forward traversal) through
	// the same transition mechanism navigations use.
	r.syncEffect = reactive.NewEffect(func() reactive.Cleanup {
		next := r.source.Location()
		if next.Value != r.reference.Peek() {
			r.scheduler.Start(func() {
				r.reference.Set(next.Value)
				r.state.Set(next.State)
			}, nil)
		}
		return nil
	})

	r.routingEffect = reactive.NewEffect(func() reactive.Cleanup {
		r.metrics.SetRouting(r.scheduler.Routing())
		return nil
	})

	return r, nil
}

// Location returns the engine's reactive location.
func (r *Router) Location() *location.Location {
	return r.location
}

// Base returns the base route context.
func (r *Router) Base() *RouteContext {
	return r.base
}

// Branches returns the compiled, sorted branch list.
func (r *Router) Branches() []*router.Branch {
	return r.branches
}

// Matches returns the per-route matches for the current location.
// Reactive read.
func (r *Router) Matches() []router.Match {
	return r.matches.Get()
}

// Contexts returns the live route contexts, root to leaf.
func (r *Router) Contexts() []*RouteContext {
	return r.contexts
}

// IsRouting reports whether a navigation transition is pending.
// Reactive read.
func (r *Router) IsRouting() bool {
	return r.scheduler.Routing()
}

// Out returns the server-mode output sink, or nil in interactive mode.
func (r *Router) Out() *Output {
	return r.out
}

// Navigate issues a navigation from the base context.
func (r *Router) Navigate(to string, opts ...router.NavigateOption) error {
	return r.navigateFromRoute(r.base, to, opts)
}

// NavigateDelta forwards a relative history traversal to the host. A zero
// delta is a no-op; a host without the capability logs a warning and drops
// the request.
func (r *Router) NavigateDelta(delta int) {
	if delta == 0 {
		return
	}
	if r.goer == nil {
		r.logger.Warn("router integration does not support relative navigation", "delta", delta)
		return
	}
	r.goer.Go(delta)
}

// UseSearchParams returns the query reader and merging writer bound to rc
// (nil means the base context). Writes navigate with the route-resolution
// default and scrolling disabled.
func (r *Router) UseSearchParams(rc *RouteContext) (get func() map[string]string, set func(map[string]string) error) {
	if rc == nil {
		rc = r.base
	}
	return location.SearchParams(r.location, func(to string) error {
		return rc.Navigate(to, router.WithoutScroll())
	})
}

// Close releases the engine's reactive subscriptions.
func (r *Router) Close() {
	r.syncEffect.Dispose()
	r.treeEffect.Dispose()
	r.routingEffect.Dispose()
	for _, rc := range r.contexts {
		rc.release()
	}
	r.contexts = nil
	r.base.release()
}

// navigateFromRoute runs the navigation state machine for one request.
// The whole request mutates engine state inside an untracked block, so a
// caller inside a tracked context never subscribes to the cells it moves.
func (r *Router) navigateFromRoute(rc *RouteContext, to string, opts []router.NavigateOption) error {
	var err error
	reactive.Untracked(func() {
		err = r.doNavigate(rc, to, opts)
	})
	return err
}

func (r *Router) doNavigate(rc *RouteContext, to string, opts []router.NavigateOption) error {
	o := router.DefaultNavigateOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var resolved string
	var ok bool
	if o.Resolve {
		resolved, ok = rc.ResolvePath(to)
	} else {
		resolved, ok = router.ResolvePath("", to, "")
	}
	if !ok {
		r.metrics.RecordNavigation(metrics.OutcomeError)
		return errors.UnroutablePath(to)
	}

	if len(r.referrers) >= MaxRedirects {
		r.metrics.RecordRedirectLoop()
		r.metrics.RecordNavigation(metrics.OutcomeError)
		return errors.RedirectLoop(MaxRedirects)
	}

	current := r.reference.Peek()
	if resolved == current && statesEqual(o.State, r.state.Peek()) {
		// Idempotent navigation: nothing to do, nothing written.
		r.metrics.RecordNavigation(metrics.OutcomeNoop)
		return nil
	}

	if r.server {
		// Non-interactive short-circuit: no transition, record and apply.
		// There is no referrer chain to bound here, so hops count against
		// the engine itself; a server engine lives for one request.
		if r.serverHops >= MaxRedirects {
			r.metrics.RecordRedirectLoop()
			r.metrics.RecordNavigation(metrics.OutcomeError)
			return errors.RedirectLoop(MaxRedirects)
		}
		r.serverHops++
		if r.out != nil {
			r.out.URL = resolved
		}
		r.source.SetLocation(history.LocationChange{
			Value:   resolved,
			State:   o.State,
			Replace: o.Replace,
			Scroll:  o.Scroll,
		})
		r.metrics.RecordNavigation(metrics.OutcomeCommitted)
		return nil
	}

	_, span := r.tracer.Start(context.Background(), "strada.navigate",
		trace.WithAttributes(
			attribute.String("strada.target", resolved),
			attribute.Bool("strada.replace", o.Replace),
		))

	r.referrers = append(r.referrers, history.LocationChange{
		Value:   current,
		State:   r.state.Peek(),
		Replace: o.Replace,
		Scroll:  o.Scroll,
	})
	chainLen := len(r.referrers)

	nextState := o.State
	r.scheduler.Start(func() {
		r.reference.Set(resolved)
		r.state.Set(nextState)
	}, func() {
		// Commit only if no later navigation superseded this one during
		// the burst.
		if len(r.referrers) == chainLen {
			r.navigateEnd(history.LocationChange{Value: resolved, State: nextState})
			span.SetAttributes(attribute.String("strada.outcome", "committed"))
		} else {
			span.SetAttributes(attribute.String("strada.outcome", "superseded"))
		}
		span.End()
	})

	return nil
}

// navigateEnd resolves a settled navigation burst: the final location is
// pushed to the host with the first referrer's replace/scroll intent, and
// all intermediate hops are discarded.
func (r *Router) navigateEnd(next history.LocationChange) {
	if len(r.referrers) == 0 {
		return
	}
	first := r.referrers[0]
	collapsed := len(r.referrers) - 1
	r.referrers = r.referrers[:0]

	if next.Value == first.Value && statesEqual(next.State, first.State) {
		// The burst redirected back to its origin; committing would
		// duplicate the entry the host already has.
		r.metrics.RecordNavigation(metrics.OutcomeNoop)
		return
	}

	r.source.SetLocation(history.LocationChange{
		Value:   next.Value,
		State:   next.State,
		Replace: first.Replace,
		Scroll:  first.Scroll,
	})

	if collapsed > 0 {
		r.metrics.RecordCollapsed(collapsed)
		r.metrics.RecordNavigation(metrics.OutcomeCollapsed)
	} else {
		r.metrics.RecordNavigation(metrics.OutcomeCommitted)
	}
}

// statesEqual compares opaque navigation states. Deep equality keeps
// non-comparable state types safe.
func statesEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	return reflect.DeepEqual(a, b)
}
