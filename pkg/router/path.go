package router

import "strings"

// normalize trims surrounding slashes and re-anchors the path with a single
// leading slash. An empty or all-slash path normalizes to "".
func normalize(path string) string {
	s := strings.Trim(path, "/")
	if s == "" {
		return ""
	}
	return "/" + s
}

// invalidPath rejects targets that can never be routable: backslashes and
// null bytes (path smuggling), and absolute URLs with a scheme.
func invalidPath(path string) bool {
	return strings.Contains(path, "\\") ||
		strings.Contains(path, "\x00") ||
		strings.Contains(path, "://")
}

// ResolvePath resolves a navigation target against a base path and,
// optionally, the path of the route issuing the navigation. Absolute
// targets resolve under base; relative targets resolve under from when it
// is itself under base. Returns ok=false for targets that are not routable.
func ResolvePath(base, to, from string) (string, bool) {
	if invalidPath(to) {
		return "", false
	}

	basePath := normalize(base)
	fromPath := normalize(from)

	var result string
	switch {
	case fromPath == "" || strings.HasPrefix(to, "/"):
		result = basePath
	case !strings.HasPrefix(strings.ToLower(fromPath), strings.ToLower(basePath)):
		result = basePath + fromPath
	default:
		result = fromPath
	}

	resolved := result + normalize(to)
	if resolved == "" {
		return "/", true
	}
	return resolved, true
}

// JoinPaths concatenates two pattern fragments, collapsing duplicate
// separators. A trailing wildcard on from is dropped (children extend the
// prefix, not the wildcard); a wildcard suffix on to is preserved.
func JoinPaths(from, to string) string {
	prefix := normalize(from)
	if i := strings.Index(prefix, "/*"); i >= 0 {
		prefix = prefix[:i]
	}
	return prefix + normalize(to)
}

// ExpandOptionals expands a pattern containing optional params (":seg?")
// into the set of concrete patterns it stands for, shortest first.
// A pattern without optionals expands to itself.
func ExpandOptionals(pattern string) []string {
	idx, seg := findOptional(pattern)
	if idx < 0 {
		return []string{pattern}
	}

	prefix := pattern[:idx]
	suffix := pattern[idx+len(seg)+1:] // skip the segment and its "?"

	// Collect the run of consecutive optional segments: each one extends
	// the previous prefix.
	prefixes := []string{prefix, prefix + seg}
	for {
		i, next := findOptional(suffix)
		if i != 0 {
			break
		}
		prefixes = append(prefixes, prefixes[len(prefixes)-1]+next)
		suffix = suffix[len(next)+1:]
	}

	var results []string
	for _, expansion := range ExpandOptionals(suffix) {
		for _, p := range prefixes {
			results = append(results, p+expansion)
		}
	}
	return results
}

// findOptional locates the first optional param segment ("/:name?") in
// pattern. Returns the index of its leading slash and the segment text
// without the trailing "?", or (-1, "").
func findOptional(pattern string) (int, string) {
	search := pattern
	offset := 0
	for {
		i := strings.Index(search, ":")
		if i < 0 {
			return -1, ""
		}
		end := strings.IndexAny(search[i:], "/?")
		if end < 0 || search[i+end] != '?' {
			if end < 0 {
				return -1, ""
			}
			offset += i + end
			search = search[i+end:]
			continue
		}
		start := i
		if start > 0 && search[start-1] == '/' {
			start--
		}
		return offset + start, search[start : i+end]
	}
}

// splitSegments splits a path into its non-empty segments.
func splitSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
