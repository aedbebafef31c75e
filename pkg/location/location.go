// Package location derives a structured, reactive location (pathname,
// search, hash, query, state) from a raw path+state pair.
package location

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/strada-dev/strada/pkg/reactive"
)

// fakeOrigin anchors relative paths for URL parsing. Opaque; never exposed.
const fakeOrigin = "http://sr"

// Location is a reactive view over a raw (path, state) pair. Derivations
// are memoized; consumers reading them inside a tracked context re-evaluate
// when the underlying pair changes.
type Location struct {
	url      *reactive.Memo[*url.URL]
	pathname *reactive.Memo[string]
	search   *reactive.Memo[string]
	hash     *reactive.Memo[string]
	query    *reactive.Memo[map[string]string]
	state    func() any
}

// New creates a location derived from the given reactive accessors.
// logger receives malformed-path parse reports; nil means slog.Default().
// onParseError, when non-nil, is additionally invoked per failed parse.
func New(path func() string, state func() any, logger *slog.Logger, onParseError func()) *Location {
	if logger == nil {
		logger = slog.Default()
	}

	// On a malformed path the previous valid parse is retained and the
	// error goes to the log, never to the caller.
	prev, _ := url.Parse(fakeOrigin)
	urlMemo := reactive.NewMemo(func() *url.URL {
		raw := path()
		u, err := url.Parse(fakeOrigin + ensureLeadingSlash(raw))
		if err != nil {
			logger.Error("invalid location path", "path", raw, "err", err)
			if onParseError != nil {
				onParseError()
			}
			return prev
		}
		prev = u
		return u
	})

	// String cutoffs keep downstream derivations quiet when only another
	// component of the raw path changed.
	stringEq := func(a, b string) bool { return a == b }
	pathname := reactive.NewMemo(func() string {
		return urlMemo.Get().Path
	}).WithEquals(stringEq)
	search := reactive.NewMemo(func() string {
		return urlMemo.Get().RawQuery
	}).WithEquals(stringEq)
	hash := reactive.NewMemo(func() string {
		return urlMemo.Get().Fragment
	}).WithEquals(stringEq)

	// query depends on search only: pathname or hash changes alone do not
	// re-derive the map.
	query := reactive.NewMemo(func() map[string]string {
		return ExtractSearchParams(search.Get())
	})

	return &Location{
		url:      urlMemo,
		pathname: pathname,
		search:   search,
		hash:     hash,
		query:    query,
		state:    state,
	}
}

// Pathname returns the location's path component. Reactive read.
func (l *Location) Pathname() string { return l.pathname.Get() }

// Search returns the query string without its leading "?". Reactive read.
func (l *Location) Search() string { return l.search.Get() }

// Hash returns the fragment without its leading "#". Reactive read.
func (l *Location) Hash() string { return l.hash.Get() }

// Query returns the decoded query mapping. Reactive read, re-derived only
// when Search changes.
func (l *Location) Query() map[string]string { return l.query.Get() }

// State returns the opaque navigation state. Reactive read.
func (l *Location) State() any {
	if l.state == nil {
		return nil
	}
	return l.state()
}

// Key is reserved for host-integration correlation. This model never
// populates it.
func (l *Location) Key() string { return "" }

// PeekPathname reads the path component without subscribing.
func (l *Location) PeekPathname() string { return l.pathname.Peek() }

// PeekSearch reads the query string without subscribing.
func (l *Location) PeekSearch() string { return l.search.Peek() }

// ExtractSearchParams decodes a query string (no leading "?") into a flat
// mapping. Repeated keys follow last-occurrence-wins.
func ExtractSearchParams(search string) map[string]string {
	params := make(map[string]string)
	for _, pair := range strings.Split(search, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			k = key
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			v = value
		}
		params[k] = v
	}
	return params
}

func ensureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
