package history

import "testing"

func TestMemorySourceInitial(t *testing.T) {
	s := NewMemorySource()
	if got := s.Location().Value; got != "/" {
		t.Errorf("initial Value = %q, want /", got)
	}
}

func TestMemorySourcePush(t *testing.T) {
	s := NewMemorySource()
	s.SetLocation(LocationChange{Value: "/a"})
	s.SetLocation(LocationChange{Value: "/b"})

	if got := s.Location().Value; got != "/b" {
		t.Errorf("Value = %q, want /b", got)
	}
	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	if entries[1].Value != "/a" || entries[2].Value != "/b" {
		t.Errorf("entries = %v", entries)
	}
}

func TestMemorySourceReplace(t *testing.T) {
	s := NewMemorySource()
	s.SetLocation(LocationChange{Value: "/a"})
	s.SetLocation(LocationChange{Value: "/a2", Replace: true})

	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[1].Value != "/a2" {
		t.Errorf("entries[1] = %v", entries[1])
	}
	if got := s.Location().Value; got != "/a2" {
		t.Errorf("Value = %q", got)
	}
}

func TestMemorySourceGo(t *testing.T) {
	s := NewMemorySource()
	s.SetLocation(LocationChange{Value: "/a"})
	s.SetLocation(LocationChange{Value: "/b"})

	s.Go(-1)
	if got := s.Location().Value; got != "/a" {
		t.Errorf("after Go(-1): %q, want /a", got)
	}
	s.Go(1)
	if got := s.Location().Value; got != "/b" {
		t.Errorf("after Go(1): %q, want /b", got)
	}
}

func TestMemorySourceGoClamps(t *testing.T) {
	s := NewMemorySource()
	s.SetLocation(LocationChange{Value: "/a"})

	s.Go(-10)
	if got := s.Location().Value; got != "/" {
		t.Errorf("after Go(-10): %q, want /", got)
	}
	s.Go(10)
	if got := s.Location().Value; got != "/a" {
		t.Errorf("after Go(10): %q, want /a", got)
	}
}

func TestMemorySourcePushTruncatesForward(t *testing.T) {
	s := NewMemorySource()
	s.SetLocation(LocationChange{Value: "/a"})
	s.SetLocation(LocationChange{Value: "/b"})
	s.Go(-1)
	s.SetLocation(LocationChange{Value: "/c"})

	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	if entries[2].Value != "/c" {
		t.Errorf("entries[2] = %v, want /c", entries[2])
	}

	// The discarded forward entry is unreachable.
	s.Go(5)
	if got := s.Location().Value; got != "/c" {
		t.Errorf("forward landed on %q, want /c", got)
	}
}
