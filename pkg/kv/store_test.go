package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_Get(t *testing.T) {
	s := New[string, int]()

	s.Swap("foo", 42)
	val, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = s.Get("bar")
	assert.False(t, ok)
}

func TestStore_Swap(t *testing.T) {
	s := New[string, string]()

	_, replaced := s.Swap("k", "first")
	assert.False(t, replaced)

	old, replaced := s.Swap("k", "second")
	assert.True(t, replaced)
	assert.Equal(t, "first", old)

	val, _ := s.Get("k")
	assert.Equal(t, "second", val)
}

func TestStore_Delete(t *testing.T) {
	s := New[string, string]()
	s.Swap("key", "value")

	old, ok := s.Delete("key")
	assert.True(t, ok)
	assert.Equal(t, "value", old)

	_, ok = s.Get("key")
	assert.False(t, ok)

	_, ok = s.Delete("key")
	assert.False(t, ok)
}

func TestStore_Drain(t *testing.T) {
	s := New[string, int]()
	s.Swap("a", 1)
	s.Swap("b", 2)

	out := s.Drain()

	assert.Equal(t, map[string]int{"a": 1, "b": 2}, out)
	assert.Equal(t, 0, s.Len())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Swap(n, n*2)
		}(i)
	}

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Get(n)
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 100, s.Len())
}
