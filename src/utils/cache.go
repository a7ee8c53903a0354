package utils

import (
	"sync"
)

// KeyedCache memoizes computed values by an exact input key for the lifetime
// of the process. Entries are written once per key and never evicted; the
// key space of the dashboard (indicator x country subset x year range) is
// small enough that no eviction policy is needed.
type KeyedCache[T any] struct {
	values map[string]T
	mutex  sync.RWMutex
}

// NewKeyedCache initializes an empty keyed cache.
func NewKeyedCache[T any]() *KeyedCache[T] {
	return &KeyedCache[T]{
		values: make(map[string]T),
	}
}

// Get retrieves the cached value for key, if present.
func (c *KeyedCache[T]) Get(key string) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	value, found := c.values[key]
	return value, found
}

// Set stores a value for key. The first writer wins; a duplicate concurrent
// writer overwrites with identical content since values are deterministic
// per key.
func (c *KeyedCache[T]) Set(key string, value T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.values[key] = value
}

// Len returns the number of cached entries.
func (c *KeyedCache[T]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.values)
}

// Clear removes all cached values. This is the manual invalidation boundary;
// nothing expires on its own.
func (c *KeyedCache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.values = make(map[string]T)
}
