package services

import "sync"

// refMemo caches the result of the last call, keyed by identity.
// Keys are pointers: a new pointer means new input even when the
// pointed-to values are equal.
type refMemo[K comparable, V any] struct {
	mu    sync.Mutex
	key   K
	value V
	ok    bool
}

// get returns the cached value for key, computing it on a miss.
func (m *refMemo[K, V]) get(key K, compute func(K) V) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ok && m.key == key {
		return m.value
	}
	m.key = key
	m.value = compute(key)
	m.ok = true
	return m.value
}
