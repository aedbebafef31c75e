package router

import (
	"reflect"
	"testing"
)

func TestResolvePathAbsolute(t *testing.T) {
	cases := []struct {
		base, to, from string
		want           string
	}{
		{"", "/users", "", "/users"},
		{"", "/users/", "", "/users"},
		{"/app", "/users", "", "/app/users"},
		{"/app", "/users", "/app/posts", "/app/users"},
		{"", "/", "", "/"},
		{"", "", "", "/"},
	}
	for _, c := range cases {
		got, ok := ResolvePath(c.base, c.to, c.from)
		if !ok {
			t.Fatalf("ResolvePath(%q, %q, %q) not ok", c.base, c.to, c.from)
		}
		if got != c.want {
			t.Errorf("ResolvePath(%q, %q, %q) = %q, want %q", c.base, c.to, c.from, got, c.want)
		}
	}
}

func TestResolvePathRelative(t *testing.T) {
	got, ok := ResolvePath("", "settings", "/users/42")
	if !ok {
		t.Fatal("expected ok")
	}
	if got != "/users/42/settings" {
		t.Errorf("got %q, want /users/42/settings", got)
	}

	got, ok = ResolvePath("/app", "edit", "/app/users/42")
	if !ok {
		t.Fatal("expected ok")
	}
	if got != "/app/users/42/edit" {
		t.Errorf("got %q, want /app/users/42/edit", got)
	}
}

func TestResolvePathUnroutable(t *testing.T) {
	for _, to := range []string{
		"https://example.com/evil",
		"a\\b",
		"a\x00b",
	} {
		if _, ok := ResolvePath("", to, ""); ok {
			t.Errorf("ResolvePath(%q) should not be routable", to)
		}
	}
}

func TestJoinPaths(t *testing.T) {
	cases := []struct {
		from, to string
		want     string
	}{
		{"/users", ":id", "/users/:id"},
		{"/users/", "/:id/", "/users/:id"},
		{"", "", ""},
		{"/", "/", ""},
		{"/files/*", "meta", "/files/meta"},
		{"/docs", "*path", "/docs/*path"},
	}
	for _, c := range cases {
		if got := JoinPaths(c.from, c.to); got != c.want {
			t.Errorf("JoinPaths(%q, %q) = %q, want %q", c.from, c.to, got, c.want)
		}
	}
}

func TestExpandOptionalsNone(t *testing.T) {
	got := ExpandOptionals("/users/:id")
	want := []string{"/users/:id"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandOptionalsSingle(t *testing.T) {
	got := ExpandOptionals("/users/:id?")
	want := []string{"/users", "/users/:id"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandOptionalsConsecutive(t *testing.T) {
	got := ExpandOptionals("/posts/:year?/:month?")
	want := []string{"/posts", "/posts/:year", "/posts/:year/:month"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandOptionalsWithSuffix(t *testing.T) {
	got := ExpandOptionals("/a/:b?/c")
	want := []string{"/a/c", "/a/:b/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
