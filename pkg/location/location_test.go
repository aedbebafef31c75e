package location

import (
	"log/slog"
	"testing"

	"github.com/strada-dev/strada/pkg/reactive"
)

func newTestLocation(initial string) (*Location, *reactive.Signal[string]) {
	path := reactive.NewSignal(initial)
	state := reactive.NewSignal[any](nil)
	return New(path.Get, state.Get, slog.Default(), nil), path
}

func TestLocationComponents(t *testing.T) {
	loc, _ := newTestLocation("/users/42?tab=posts&sort=asc#bio")

	if got := loc.Pathname(); got != "/users/42" {
		t.Errorf("Pathname = %q", got)
	}
	if got := loc.Search(); got != "tab=posts&sort=asc" {
		t.Errorf("Search = %q", got)
	}
	if got := loc.Hash(); got != "bio" {
		t.Errorf("Hash = %q", got)
	}
	q := loc.Query()
	if q["tab"] != "posts" || q["sort"] != "asc" {
		t.Errorf("Query = %v", q)
	}
}

func TestLocationEmptyComponents(t *testing.T) {
	loc, _ := newTestLocation("/plain")

	if got := loc.Search(); got != "" {
		t.Errorf("Search = %q, want empty", got)
	}
	if got := loc.Hash(); got != "" {
		t.Errorf("Hash = %q, want empty", got)
	}
	if got := loc.Query(); len(got) != 0 {
		t.Errorf("Query = %v, want empty", got)
	}
}

func TestLocationReactsToPathChange(t *testing.T) {
	loc, path := newTestLocation("/a")

	if got := loc.Pathname(); got != "/a" {
		t.Fatalf("Pathname = %q", got)
	}
	path.Set("/b?x=1")
	if got := loc.Pathname(); got != "/b" {
		t.Errorf("Pathname = %q, want /b", got)
	}
	if got := loc.Query()["x"]; got != "1" {
		t.Errorf("Query[x] = %q, want 1", got)
	}
}

func TestLocationKeepsLastGoodOnParseError(t *testing.T) {
	loc, path := newTestLocation("/good?a=1")

	if got := loc.Pathname(); got != "/good" {
		t.Fatalf("Pathname = %q", got)
	}

	// A control character makes url.Parse fail; the previous parse stays.
	path.Set("/bad\x7fpath?b=2#frag\x01")
	if got := loc.Pathname(); got != "/good" {
		t.Errorf("Pathname = %q, want retained /good", got)
	}
	if got := loc.Search(); got != "a=1" {
		t.Errorf("Search = %q, want retained a=1", got)
	}

	// Recovery on the next valid path.
	path.Set("/recovered")
	if got := loc.Pathname(); got != "/recovered" {
		t.Errorf("Pathname = %q, want /recovered", got)
	}
}

func TestLocationReportsParseError(t *testing.T) {
	path := reactive.NewSignal("/ok")
	state := reactive.NewSignal[any](nil)

	reports := 0
	loc := New(path.Get, state.Get, nil, func() { reports++ })

	if got := loc.Pathname(); got != "/ok" {
		t.Fatalf("Pathname = %q", got)
	}
	path.Set("/bad\x01")
	_ = loc.Pathname()
	if reports != 1 {
		t.Errorf("reports = %d, want 1", reports)
	}
}

func TestLocationQueryStableAcrossPathnameChange(t *testing.T) {
	loc, path := newTestLocation("/a?x=1")

	runs := 0
	effect := reactive.NewEffect(func() reactive.Cleanup {
		_ = loc.Query()
		runs++
		return nil
	})
	defer effect.Dispose()

	if runs != 1 {
		t.Fatalf("runs = %d, want 1", runs)
	}

	// Same search, different pathname: the query derivation stays quiet.
	path.Set("/b?x=1")
	if runs != 1 {
		t.Errorf("runs = %d after pathname-only change, want 1", runs)
	}

	path.Set("/b?x=2")
	if runs != 2 {
		t.Errorf("runs = %d after search change, want 2", runs)
	}
}

func TestLocationState(t *testing.T) {
	path := reactive.NewSignal("/")
	state := reactive.NewSignal[any](map[string]any{"from": "test"})
	loc := New(path.Get, state.Get, nil, nil)

	got, ok := loc.State().(map[string]any)
	if !ok || got["from"] != "test" {
		t.Errorf("State = %v", loc.State())
	}
}

func TestExtractSearchParams(t *testing.T) {
	got := ExtractSearchParams("a=1&b=two%20words&c")
	if got["a"] != "1" {
		t.Errorf("a = %q", got["a"])
	}
	if got["b"] != "two words" {
		t.Errorf("b = %q", got["b"])
	}
	if v, ok := got["c"]; !ok || v != "" {
		t.Errorf("c = %q, ok=%v", v, ok)
	}
}

func TestExtractSearchParamsLastWins(t *testing.T) {
	got := ExtractSearchParams("k=first&k=second")
	if got["k"] != "second" {
		t.Errorf("k = %q, want second", got["k"])
	}
}

func TestExtractSearchParamsBadEncoding(t *testing.T) {
	got := ExtractSearchParams("k=100%")
	if got["k"] != "100%" {
		t.Errorf("k = %q, want raw fallback", got["k"])
	}
}

func TestSearchParamsMerge(t *testing.T) {
	loc, _ := newTestLocation("/list?a=1&b=2#top")

	var target string
	_, set := SearchParams(loc, func(to string) error {
		target = to
		return nil
	})

	if err := set(map[string]string{"b": "3", "c": "4"}); err != nil {
		t.Fatal(err)
	}
	if target != "/list?a=1&b=3&c=4#top" {
		t.Errorf("target = %q", target)
	}
}

func TestSearchParamsDeleteOnEmpty(t *testing.T) {
	loc, _ := newTestLocation("/list?a=1&b=2")

	var target string
	_, set := SearchParams(loc, func(to string) error {
		target = to
		return nil
	})

	if err := set(map[string]string{"a": ""}); err != nil {
		t.Fatal(err)
	}
	if target != "/list?b=2" {
		t.Errorf("target = %q", target)
	}

	if err := set(map[string]string{"b": ""}); err != nil {
		t.Fatal(err)
	}
	if target != "/list" {
		t.Errorf("target = %q, want bare pathname", target)
	}
}

func TestSearchParamsGetReadsQuery(t *testing.T) {
	loc, path := newTestLocation("/list?a=1")

	get, _ := SearchParams(loc, func(string) error { return nil })
	if got := get()["a"]; got != "1" {
		t.Errorf("get()[a] = %q", got)
	}
	path.Set("/list?a=9")
	if got := get()["a"]; got != "9" {
		t.Errorf("get()[a] = %q after change", got)
	}
}
