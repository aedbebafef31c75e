package errors

import (
	"errors"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := UnroutablePath("../nope")
	if got := err.Error(); got != `R002: path "../nope" is not a routable path` {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestSentinelMatching(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{InvalidBase(":"), ErrInvalidBase},
		{UnroutablePath("x"), ErrInvalidPath},
		{RedirectLoop(100), ErrTooManyRedirects},
		{ConfigMissing("/tmp/strada.json"), ErrConfig},
		{ConfigInvalid("bad json", errors.New("unexpected EOF")), ErrConfig},
	}

	for _, c := range cases {
		if !errors.Is(c.err, c.sentinel) {
			t.Errorf("%v should match sentinel %v", c.err, c.sentinel)
		}
	}
}

func TestCategories(t *testing.T) {
	if RedirectLoop(100).Category != CategoryNavigation {
		t.Error("redirect loop should be a navigation error")
	}
	if InvalidBase("").Category != CategoryConfig {
		t.Error("invalid base should be a config error")
	}
}
