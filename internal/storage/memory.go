package storage

import (
	"context"
	"sync"

	"github.com/ignite/customer-onboarding/internal/domain"
	"github.com/ignite/customer-onboarding/internal/service/customer"
)

// MemoryStore keeps customers in a map for the lifetime of the process.
// A single lock covers both the counter and the map, so an identifier is
// never observable before its record is.
type MemoryStore struct {
	mu      sync.RWMutex
	lastID  uint64
	records map[uint64]domain.Customer
}

// NewMemoryStore creates an empty store. The first Save receives ID 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uint64]domain.Customer)}
}

// Save assigns the next ID to c and stores a copy of it.
func (s *MemoryStore) Save(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	c.ID = s.lastID
	s.records[c.ID] = c.Clone()
	return c, nil
}

// FindByID returns a copy of the stored customer or customer.ErrNotFound.
func (s *MemoryStore) FindByID(_ context.Context, id uint64) (*domain.Customer, error) {
	s.mu.RLock()
	c, ok := s.records[id]
	s.mu.RUnlock()

	if !ok {
		return nil, customer.ErrNotFound
	}
	out := c.Clone()
	return &out, nil
}

// Len returns the number of stored customers.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
