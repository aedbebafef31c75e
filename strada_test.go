package strada

import "testing"

func TestFacadeNavigation(t *testing.T) {
	src := NewMemorySource()
	loads := 0

	r, err := New([]Definition{
		{Path: "/"},
		{Path: "/users/:id", Data: func(args LoaderArgs) any {
			loads++
			return nil
		}},
	}, Options{Source: src})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.Navigate("/users/7", WithState("hello")); err != nil {
		t.Fatal(err)
	}
	if got := r.Location().Pathname(); got != "/users/7" {
		t.Errorf("Pathname = %q", got)
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
	if got := r.Location().State(); got != "hello" {
		t.Errorf("State = %v", got)
	}
}

func TestFacadeReactivePrimitives(t *testing.T) {
	count := NewSignal(1)
	double := NewMemo(func() int { return count.Get() * 2 })

	var seen []int
	effect := NewEffect(func() Cleanup {
		seen = append(seen, double.Get())
		return nil
	})
	defer effect.Dispose()

	Batch(func() {
		count.Set(2)
		count.Set(3)
	})

	if len(seen) != 2 || seen[0] != 2 || seen[1] != 6 {
		t.Errorf("seen = %v", seen)
	}
}
