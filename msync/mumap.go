package msync

import "sync"

type MuMap[K comparable, T any] struct {
	mu   sync.RWMutex
	data map[K]T
}

func NewMuMap[K comparable, T any]() *MuMap[K, T] {
	return &MuMap[K, T]{data: make(map[K]T)}
}

func (mm *MuMap[K, T]) Get(key K) (T, bool) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	value, ok := mm.data[key]
	return value, ok
}

func (mm *MuMap[K, T]) Set(key K, value T) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	mm.data[key] = value
}

// Take removes key and returns its value.
func (mm *MuMap[K, T]) Take(key K) (T, bool) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	value, ok := mm.data[key]
	if ok {
		delete(mm.data, key)
	}
	return value, ok
}

func (mm *MuMap[K, T]) Len() int {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	return len(mm.data)
}
