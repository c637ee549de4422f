// Package kv provides a generic thread-safe key-value store.
package kv

import "sync"

// Store is a thread-safe generic key-value store.
type Store[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates a new key-value store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Swap stores value under key and returns the value it replaced, if any.
func (s *Store[K, V]) Swap(key K, value V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.data[key]
	s.data[key] = value
	return old, ok
}

// Delete removes a key and returns the value it held, if any.
func (s *Store[K, V]) Delete(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.data[key]
	delete(s.data, key)
	return old, ok
}

// Drain empties the store and returns everything it held.
func (s *Store[K, V]) Drain() map[K]V {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.data
	s.data = make(map[K]V)
	return out
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
