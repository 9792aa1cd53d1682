package util

import "sync"

// RingBuffer is a fixed-capacity circular buffer. When full, Push overwrites
// the oldest element. It can be drained from either end: Snapshot reads
// oldest first, Pop removes the newest. All methods are safe for concurrent use.
type RingBuffer[T any] struct {
	mu    sync.RWMutex
	buf   []T
	head  int
	count int
}

// NewRingBuffer creates a ring buffer with the given capacity.
// A capacity below 1 is raised to 1.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer[T]{buf: make([]T, capacity)}
}

// Push appends an item, overwriting the oldest if full.
// It reports whether an element was evicted to make room.
func (r *RingBuffer[T]) Push(item T) (evicted bool) {
	r.mu.Lock()
	idx := (r.head + r.count) % len(r.buf)
	r.buf[idx] = item
	if r.count == len(r.buf) {
		r.head = (r.head + 1) % len(r.buf)
		evicted = true
	} else {
		r.count++
	}
	r.mu.Unlock()
	return evicted
}

// Pop removes and returns the newest element.
func (r *RingBuffer[T]) Pop() (T, bool) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.count == 0 {
		return zero, false
	}
	idx := (r.head + r.count - 1) % len(r.buf)
	item := r.buf[idx]
	r.buf[idx] = zero
	r.count--
	return item, true
}

// Any reports whether some stored element satisfies match.
func (r *RingBuffer[T]) Any(match func(T) bool) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := 0; i < r.count; i++ {
		if match(r.buf[(r.head+i)%len(r.buf)]) {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of all elements in order (oldest first).
func (r *RingBuffer[T]) Snapshot() []T {
	r.mu.RLock()
	out := make([]T, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	r.mu.RUnlock()
	return out
}

// Len returns the number of elements stored.
func (r *RingBuffer[T]) Len() int {
	r.mu.RLock()
	n := r.count
	r.mu.RUnlock()
	return n
}
