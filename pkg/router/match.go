package router

// Match is the result of successfully matching one route of a branch.
type Match struct {
	// Params are the extracted path parameters.
	Params map[string]string

	// Path is the sub-path this route's pattern consumed.
	Path string

	// Route is the matched route.
	Route *Route
}

// GetRouteMatches resolves a location path against the sorted branch list.
// Branches are tried in their fixed order; the first branch whose composite
// matcher accepts the path wins. An empty result means no route matched,
// which is not an error.
func GetRouteMatches(branches []*Branch, path string) []Match {
	for _, branch := range branches {
		if matches := branch.Matcher(path); matches != nil {
			return matches
		}
	}
	return nil
}
