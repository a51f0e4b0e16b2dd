package msync

import "sync"

// Log is an append-only sequence safe for concurrent use. The zero value is
// ready to use.
type Log[T any] struct {
	mu    sync.Mutex
	items []T
}

// Append adds item and returns its index.
func (l *Log[T]) Append(item T) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = append(l.items, item)
	return len(l.items) - 1
}

func (l *Log[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.items)
}

func (l *Log[T]) Last() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	if len(l.items) == 0 {
		return zero, false
	}
	return l.items[len(l.items)-1], true
}

// Snapshot returns a copy of the items in insertion order.
func (l *Log[T]) Snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]T, len(l.items))
	copy(items, l.items)
	return items
}

func (l *Log[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
}
