package cache

import (
	"sync"
	"time"

	"homematch-search/internal/models"
)

type entry struct {
	key        string
	properties []models.Property
	storedAt   time.Time
}

// Store is a bounded, time-expiring in-memory store for search results.
//
// Eviction policy: when the store is full, the least-recently-INSERTED entry
// is dropped. This is a deliberate simplification, not LRU: reads do not
// refresh an entry's position, only writes do. Expired entries are purged
// lazily on read and are indistinguishable from absent ones.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[string]*entry
	order    []string // insertion order, oldest first

	now func() time.Time
}

// NewStore creates a Store with the given TTL and capacity.
func NewStore(ttl time.Duration, capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]*entry, capacity),
		now:      time.Now,
	}
}

// Get returns the stored properties for key, or ok=false when the key is
// absent or its entry has expired. The returned slice is a copy; callers
// can never reach the stored entry through it.
func (s *Store) Get(key string) ([]models.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.storedAt) >= s.ttl {
		s.remove(key)
		return nil, false
	}
	return copyProperties(e.properties), true
}

// Put stores a defensive copy of properties under key, replacing any
// existing entry. Re-inserting an existing key moves it to the back of the
// eviction queue.
func (s *Store) Put(key string, properties []models.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		s.remove(key)
	}
	for len(s.entries) >= s.capacity {
		s.remove(s.order[0])
	}
	s.entries[key] = &entry{
		key:        key,
		properties: copyProperties(properties),
		storedAt:   s.now(),
	}
	s.order = append(s.order, key)
}

// Len returns the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// remove drops key from both the map and the insertion queue.
// Caller must hold the lock.
func (s *Store) remove(key string) {
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func copyProperties(in []models.Property) []models.Property {
	out := make([]models.Property, len(in))
	copy(out, in)
	return out
}
