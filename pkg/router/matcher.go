package router

import (
	"net/url"
	"strings"
)

// MatchPartial is the result of matching one pattern against a location
// path: the extracted params and the portion of the path the pattern
// consumed.
type MatchPartial struct {
	Params map[string]string
	Path   string
}

// MatcherFunc tests a location path against a compiled pattern.
// Returns nil on mismatch.
type MatcherFunc func(path string) *MatchPartial

// CreateMatcher compiles a pattern into a matcher. A partial matcher
// (used for non-leaf routes) succeeds when its segments match as a strict
// prefix, regardless of remaining path; a full matcher requires the
// location to be consumed exactly unless the pattern ends in a wildcard.
func CreateMatcher(pattern string, partial bool) MatcherFunc {
	segments, splat, hasSplat := splitPattern(pattern)

	return func(path string) *MatchPartial {
		locSegments := splitSegments(path)
		lenDiff := len(locSegments) - len(segments)
		if lenDiff < 0 || (lenDiff > 0 && !hasSplat && !partial) {
			return nil
		}

		match := &MatchPartial{
			Params: make(map[string]string),
		}
		if len(segments) == 0 {
			match.Path = "/"
		}

		for i, segment := range segments {
			locSegment := locSegments[i]
			if strings.HasPrefix(segment, ":") {
				match.Params[segment[1:]] = decodeSegment(locSegment)
			} else if segment != locSegment {
				return nil
			}
			match.Path += "/" + locSegment
		}

		if hasSplat {
			var rest string
			if lenDiff > 0 {
				rest = strings.Join(locSegments[len(segments):], "/")
			}
			match.Params[splat] = rest
		}

		return match
	}
}

// splitPattern splits a pattern into its matchable segments and an optional
// trailing wildcard name. A bare "*" binds under "*".
func splitPattern(pattern string) (segments []string, splat string, hasSplat bool) {
	all := splitSegments(pattern)
	for i, seg := range all {
		if strings.HasPrefix(seg, "*") {
			name := seg[1:]
			if name == "" {
				name = "*"
			}
			return all[:i], name, true
		}
	}
	return all, "", false
}

// decodeSegment URL-decodes a captured param segment, falling back to the
// raw text when it is not valid percent-encoding.
func decodeSegment(seg string) string {
	decoded, err := url.PathUnescape(seg)
	if err != nil {
		return seg
	}
	return decoded
}

// scorePattern ranks a pattern's specificity: a static segment outranks a
// param segment, which outranks a wildcard, and longer static prefixes
// outrank shorter ones.
func scorePattern(pattern string) int {
	segments, _, hasSplat := splitPattern(pattern)
	score := 0
	for _, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			score += 3
		} else {
			score += 4
		}
	}
	if hasSplat {
		score--
	}
	return score
}
