// internal/cart/memory.go
package cart

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	cart     Cart
	lastSeen time.Time
}

// MemoryStore holds session carts in process memory. Suitable for a single
// instance; deployments with more than one replica should use the Redis
// store instead.
type MemoryStore struct {
	mtx     sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
	}

	// Clean up expired sessions every minute
	go s.cleanupEntries()

	return s
}

func (s *MemoryStore) cleanupEntries() {
	for {
		time.Sleep(time.Minute)
		s.mtx.Lock()
		for id, e := range s.entries {
			if time.Since(e.lastSeen) > s.ttl {
				delete(s.entries, id)
			}
		}
		s.mtx.Unlock()
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	e, exists := s.entries[sessionID]
	if !exists || time.Since(e.lastSeen) > s.ttl {
		return Cart{}, nil
	}

	e.lastSeen = time.Now()
	return e.cart, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, c Cart) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.entries[sessionID] = &memoryEntry{cart: c, lastSeen: time.Now()}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.entries, sessionID)
	return nil
}
