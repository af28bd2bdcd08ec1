package store

import "sync"

type entry[V any] struct {
	generation uint64
	value      V
}

// Option configures a SnapshotStore.
type Option func(*settings)

type settings struct {
	limit int
}

// WithLimit caps the number of stored keys. Adding a key beyond the cap
// evicts the key holding the oldest generation. Zero means unbounded.
func WithLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.limit = n
		}
	}
}

// SnapshotStore keeps the newest snapshot per key. Each write carries the
// generation it was produced under; a write older than the stored one is
// dropped so a slow refresh cannot overwrite a newer result.
type SnapshotStore[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	limit   int
}

// NewSnapshotStore constructs an empty SnapshotStore.
func NewSnapshotStore[K comparable, V any](opts ...Option) *SnapshotStore[K, V] {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SnapshotStore[K, V]{
		entries: make(map[K]entry[V]),
		limit:   cfg.limit,
	}
}

// Put stores value under key unless a newer generation is already present.
// It reports whether the value was stored. Equal generations overwrite.
func (s *SnapshotStore[K, V]) Put(key K, generation uint64, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.entries[key]
	if ok && generation < cur.generation {
		return false
	}
	if !ok && s.limit > 0 && len(s.entries) >= s.limit {
		s.evictOldest()
	}
	s.entries[key] = entry[V]{generation: generation, value: value}
	return true
}

func (s *SnapshotStore[K, V]) evictOldest() {
	var (
		oldest K
		lowest uint64
		found  bool
	)
	for k, e := range s.entries {
		if !found || e.generation < lowest {
			oldest, lowest, found = k, e.generation, true
		}
	}
	if found {
		delete(s.entries, oldest)
	}
}

// Get returns the stored value and its generation.
func (s *SnapshotStore[K, V]) Get(key K) (V, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	return e.value, e.generation, ok
}

// Generation returns the stored generation for key, or 0.
func (s *SnapshotStore[K, V]) Generation(key K) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key].generation
}

// Len returns the number of stored keys.
func (s *SnapshotStore[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Delete removes key.
func (s *SnapshotStore[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}
