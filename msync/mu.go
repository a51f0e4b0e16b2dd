// Package msync holds small generic mutex-guarded containers.
package msync

import "sync"

// Mu guards a single value.
type Mu[T any] struct {
	mu    sync.RWMutex
	value T
}

func NewMu[T any](value T) *Mu[T] {
	return &Mu[T]{value: value}
}

func (m *Mu[T]) Get() T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.value
}

func (m *Mu[T]) Set(value T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.value = value
}

// Update replaces the value with fn's result under the write lock and
// returns it.
func (m *Mu[T]) Update(fn func(value T) T) T {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.value = fn(m.value)
	return m.value
}
