package navigator

import (
	"github.com/strada-dev/strada/pkg/reactive"
	"github.com/strada-dev/strada/pkg/router"
)

// matchAt returns the current match at a chain position. Reactive read;
// positions past the chain yield a zero match.
func (r *Router) matchAt(index int) router.Match {
	matches := r.matches.Get()
	if index >= 0 && index < len(matches) {
		return matches[index]
	}
	return router.Match{}
}

// setupTree installs the effect that reconciles the live route contexts
// with the current matches. A context survives re-matching as long as the
// same route occupies the same chain position, so its data loader runs
// once per route, not once per location change. Anything else at that
// position recreates the context (and its descendants, since their parent
// changed).
func (r *Router) setupTree() {
	r.treeEffect = reactive.NewEffect(func() reactive.Cleanup {
		next := r.matches.Get()

		prev := r.contexts
		contexts := make([]*RouteContext, len(next))
		recreated := false
		for i := range next {
			if !recreated && i < len(prev) && prev[i] != nil && prev[i].route == next[i].Route {
				contexts[i] = prev[i]
				continue
			}
			recreated = true
			parent := r.base
			if i > 0 {
				parent = contexts[i-1]
			}
			contexts[i] = createRouteContext(r, parent, i)
		}
		r.contexts = contexts

		// Contexts dropped from the chain release their derivations;
		// otherwise the matches memo retains them until Close.
		for i, rc := range prev {
			if rc == nil {
				continue
			}
			if i < len(contexts) && contexts[i] == rc {
				continue
			}
			rc.release()
		}

		if r.out != nil {
			r.out.Matches = next
		}
		return nil
	})
}
