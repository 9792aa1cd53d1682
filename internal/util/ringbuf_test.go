package util

import (
	"path/filepath"
	"testing"
)

func TestRingBufferEvictsOldest(t *testing.T) {
	r := NewRingBuffer[int](3)
	for i := 1; i <= 3; i++ {
		if r.Push(i) {
			t.Fatalf("push %d evicted before the buffer was full", i)
		}
	}
	if !r.Push(4) {
		t.Fatal("expected push into a full buffer to evict")
	}

	got := r.Snapshot()
	want := []int{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("snapshot = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot = %v, want %v", got, want)
		}
	}
}

func TestRingBufferPopIsLIFO(t *testing.T) {
	r := NewRingBuffer[string](2)
	r.Push("a")
	r.Push("b")
	r.Push("c") // evicts "a"

	for _, want := range []string{"c", "b"} {
		got, ok := r.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = %q, %v; want %q, true", got, ok, want)
		}
	}
	if _, ok := r.Pop(); ok {
		t.Fatal("Pop on empty buffer should report false")
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d, want 0", r.Len())
	}

	// Buffer stays usable after wrapping and draining.
	r.Push("d")
	if got, _ := r.Pop(); got != "d" {
		t.Fatalf("Pop() = %q, want d", got)
	}
}

func TestRingBufferAny(t *testing.T) {
	r := NewRingBuffer[int](4)
	r.Push(10)
	r.Push(20)
	if !r.Any(func(v int) bool { return v == 20 }) {
		t.Fatal("expected to find 20")
	}
	if r.Any(func(v int) bool { return v == 30 }) {
		t.Fatal("did not expect to find 30")
	}
}

func TestRingBufferMinimumCapacity(t *testing.T) {
	r := NewRingBuffer[int](0)
	r.Push(1)
	if evicted := r.Push(2); !evicted {
		t.Fatal("second push into a capacity-1 buffer should evict")
	}
	if got := r.Snapshot(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("Snapshot = %v, want [2]", got)
	}
}

func TestValidateExternalURL(t *testing.T) {
	for _, ok := range []string{"https://example.org", "http://127.0.0.1:8080/x"} {
		if err := ValidateExternalURL(ok); err != nil {
			t.Fatalf("%q: unexpected error %v", ok, err)
		}
	}
	for _, bad := range []string{"file:///etc/passwd", "javascript:alert(1)", "https://", "not a url"} {
		if err := ValidateExternalURL(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("base", "rel/x"); got != filepath.Join("base", "rel/x") {
		t.Fatalf("got %q", got)
	}
	abs := filepath.Join(string(filepath.Separator), "abs", "x")
	if got := ResolvePath("base", abs); got != abs {
		t.Fatalf("got %q, want %q", got, abs)
	}
}
