package router

import "sort"

// Branch is one complete root-to-leaf chain of routes with a composite
// matcher and a priority score. Branches are built and sorted exactly once,
// at tree-build time.
type Branch struct {
	// Routes is the root-to-leaf route chain.
	Routes []*Route

	// Score orders branches: leaf specificity times 10000, minus the
	// creation index as a stable tie-breaker favoring earlier declaration.
	Score int
}

// Matcher matches a location path against the whole chain. Every route's
// own matcher must accept the path (non-leaf routes match as prefixes);
// the result is one Match per route, root to leaf. Returns nil when any
// route in the chain rejects the path.
func (b *Branch) Matcher(path string) []Match {
	matches := make([]Match, len(b.Routes))
	for i := len(b.Routes) - 1; i >= 0; i-- {
		route := b.Routes[i]
		partial := route.Matcher(path)
		if partial == nil {
			return nil
		}
		matches[i] = Match{
			Params: partial.Params,
			Path:   partial.Path,
			Route:  route,
		}
	}
	return matches
}

// createBranch seals the current route stack into a branch.
func createBranch(routes []*Route, index int) *Branch {
	leaf := routes[len(routes)-1]
	return &Branch{
		Routes: routes,
		Score:  scorePattern(leaf.Pattern)*10000 - index,
	}
}

// CreateBranches expands a route-definition tree into the flat, sorted
// branch list the resolver matches against. Optional params expand into
// sibling definitions before compilation. fallback supplies the element
// producer for definitions without a component; it may be nil.
func CreateBranches(defs []Definition, base string, fallback ElementFunc) []*Branch {
	var branches []*Branch
	var stack []*Route

	var walk func(defs []Definition, base string)
	walk = func(defs []Definition, base string) {
		for _, def := range defs {
			for _, expanded := range ExpandOptionals(def.Path) {
				expandedDef := def
				expandedDef.Path = expanded

				route := createRoute(expandedDef, base, fallback)
				stack = append(stack, route)

				if len(expandedDef.Children) > 0 {
					walk(expandedDef.Children, route.Pattern)
				} else {
					chain := make([]*Route, len(stack))
					copy(chain, stack)
					branches = append(branches, createBranch(chain, len(branches)))
				}

				stack = stack[:len(stack)-1]
			}
		}
	}
	walk(defs, base)

	// The one and only sort: descending by score.
	sort.SliceStable(branches, func(i, j int) bool {
		return branches[i].Score > branches[j].Score
	})
	return branches
}
