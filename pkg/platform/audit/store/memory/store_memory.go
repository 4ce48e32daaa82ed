package memory

import (
	"context"
	"sync"

	id "bukuinduk/pkg/domain"
	audit "bukuinduk/pkg/platform/audit"
)

// DefaultCapacity bounds the store when no capacity is given.
const DefaultCapacity = 1000

// InMemoryStore keeps the most recent audit events in a fixed-size ring.
// Used when no Kafka brokers are configured and in tests. Once full, each
// append evicts the oldest event.
type InMemoryStore struct {
	mu      sync.RWMutex
	ring    []audit.Event
	next    int
	full    bool
	evicted int
}

type Option func(*InMemoryStore)

// WithCapacity sets how many events are retained.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.ring = make([]audit.Event, n)
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{ring: make([]audit.Event, DefaultCapacity)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.full {
		s.evicted++
	}
	s.ring[s.next] = event
	s.next = (s.next + 1) % len(s.ring)
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// ListByTenant returns the retained events for tenantID, oldest first.
func (s *InMemoryStore) ListByTenant(_ context.Context, tenantID id.TenantID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []audit.Event{}
	for _, e := range s.ordered() {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Len reports how many events are retained.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.full {
		return len(s.ring)
	}
	return s.next
}

// Evicted reports how many events were dropped to stay within capacity.
func (s *InMemoryStore) Evicted() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evicted
}

func (s *InMemoryStore) ordered() []audit.Event {
	if !s.full {
		return s.ring[:s.next]
	}
	return append(append([]audit.Event{}, s.ring[s.next:]...), s.ring[:s.next]...)
}
