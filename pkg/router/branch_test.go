package router

import "testing"

func leafPatterns(branches []*Branch) []string {
	out := make([]string, len(branches))
	for i, b := range branches {
		out[i] = b.Routes[len(b.Routes)-1].Pattern
	}
	return out
}

func TestCreateBranchesOrdering(t *testing.T) {
	defs := []Definition{
		{Path: "/users/*rest"},
		{Path: "/users/:id"},
		{Path: "/users/new"},
	}
	branches := CreateBranches(defs, "", nil)

	got := leafPatterns(branches)
	want := []string{"/users/new", "/users/:id", "/users/*rest"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("branch order = %v, want %v", got, want)
		}
	}
}

func TestCreateBranchesStableTieBreak(t *testing.T) {
	defs := []Definition{
		{Path: "/a/:x"},
		{Path: "/b/:y"},
	}
	branches := CreateBranches(defs, "", nil)

	// Equal specificity: declaration order wins.
	got := leafPatterns(branches)
	if got[0] != "/a/:x" || got[1] != "/b/:y" {
		t.Errorf("branch order = %v, want declaration order", got)
	}
}

func TestCreateBranchesNested(t *testing.T) {
	defs := []Definition{
		{Path: "/a", Children: []Definition{
			{Path: "/b"},
		}},
	}
	branches := CreateBranches(defs, "", nil)

	if len(branches) != 1 {
		t.Fatalf("len(branches) = %d, want 1", len(branches))
	}
	b := branches[0]
	if len(b.Routes) != 2 {
		t.Fatalf("len(Routes) = %d, want 2", len(b.Routes))
	}
	if b.Routes[0].Pattern != "/a" || b.Routes[1].Pattern != "/a/b" {
		t.Errorf("patterns = %q, %q", b.Routes[0].Pattern, b.Routes[1].Pattern)
	}

	matches := b.Matcher("/a/b")
	if matches == nil {
		t.Fatal("expected match for /a/b")
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].Path != "/a" {
		t.Errorf("matches[0].Path = %q, want /a", matches[0].Path)
	}
	if matches[1].Path != "/a/b" {
		t.Errorf("matches[1].Path = %q, want /a/b", matches[1].Path)
	}

	if b.Matcher("/a") != nil {
		t.Error("branch must reject paths its leaf does not consume")
	}
}

func TestCreateBranchesOptionalExpansion(t *testing.T) {
	defs := []Definition{
		{Path: "/posts/:page?"},
	}
	branches := CreateBranches(defs, "", nil)

	if len(branches) != 2 {
		t.Fatalf("len(branches) = %d, want 2", len(branches))
	}

	// The concrete sibling with the param outranks the bare prefix.
	if m := GetRouteMatches(branches, "/posts/2"); m == nil || m[0].Params["page"] != "2" {
		t.Errorf("match for /posts/2 = %v", m)
	}
	if m := GetRouteMatches(branches, "/posts"); m == nil || len(m[0].Params) != 0 {
		t.Errorf("match for /posts = %v", m)
	}
}

func TestCreateBranchesBase(t *testing.T) {
	defs := []Definition{
		{Path: "/users"},
	}
	branches := CreateBranches(defs, "/app", nil)

	if m := GetRouteMatches(branches, "/app/users"); m == nil {
		t.Error("expected match under base prefix")
	}
	if m := GetRouteMatches(branches, "/users"); m != nil {
		t.Error("should not match outside base prefix")
	}
}

func TestCreateBranchesFallbackElement(t *testing.T) {
	fallbackCalled := false
	fallback := func() Element { fallbackCalled = true; return nil }

	defs := []Definition{
		{Path: "/bare"},
	}
	branches := CreateBranches(defs, "", fallback)

	leaf := branches[0].Routes[0]
	if leaf.Element == nil {
		t.Fatal("expected fallback element")
	}
	leaf.Element()
	if !fallbackCalled {
		t.Error("fallback was not invoked")
	}
}

func TestGetRouteMatchesFirstWins(t *testing.T) {
	defs := []Definition{
		{Path: "/users/:id"},
		{Path: "/users/new"},
	}
	branches := CreateBranches(defs, "", nil)

	m := GetRouteMatches(branches, "/users/new")
	if m == nil {
		t.Fatal("expected match")
	}
	if m[0].Route.Pattern != "/users/new" {
		t.Errorf("matched %q, want the static route", m[0].Route.Pattern)
	}

	m = GetRouteMatches(branches, "/users/42")
	if m == nil {
		t.Fatal("expected match")
	}
	if m[0].Params["id"] != "42" {
		t.Errorf("Params = %v", m[0].Params)
	}
}

func TestGetRouteMatchesNone(t *testing.T) {
	branches := CreateBranches([]Definition{{Path: "/only"}}, "", nil)
	if m := GetRouteMatches(branches, "/missing"); m != nil {
		t.Errorf("expected nil, got %v", m)
	}
}

func TestNonLeafWildcardTruncation(t *testing.T) {
	defs := []Definition{
		{Path: "/files/*", Children: []Definition{
			{Path: "/meta"},
		}},
	}
	branches := CreateBranches(defs, "", nil)

	b := branches[0]
	if b.Routes[0].Pattern != "/files" {
		t.Errorf("non-leaf pattern = %q, want /files", b.Routes[0].Pattern)
	}
	if b.Routes[1].Pattern != "/files/meta" {
		t.Errorf("leaf pattern = %q, want /files/meta", b.Routes[1].Pattern)
	}
}
