package location

import (
	"net/url"
	"sort"
	"strings"

	"github.com/strada-dev/strada/pkg/reactive"
)

// SearchParams wires a reactive query reader to a merging writer. The
// navigate function is expected to carry the caller's defaults for search
// updates (resolve against the current route, no scroll).
//
// The setter merges the given pairs into the current search string: an
// empty value deletes its key, everything else overwrites. The resulting
// target preserves pathname and hash.
func SearchParams(loc *Location, navigate func(to string) error) (get func() map[string]string, set func(params map[string]string) error) {
	get = loc.Query

	set = func(params map[string]string) error {
		var target string
		reactive.Untracked(func() {
			merged := ExtractSearchParams(loc.Search())
			for k, v := range params {
				if v == "" {
					delete(merged, k)
					continue
				}
				merged[k] = v
			}
			target = loc.Pathname() + encodeSearch(merged)
			if hash := loc.Hash(); hash != "" {
				target += "#" + hash
			}
		})
		return navigate(target)
	}

	return get, set
}

// encodeSearch encodes a query mapping with a leading "?", keys sorted for
// a stable result. Empty mappings encode to "".
func encodeSearch(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}
