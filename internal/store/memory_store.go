package store

import (
	"sync"

	"pulsecheck/internal/services"
)

// MemoryStore is an in-process CheckinStore used by tests and as a
// zero-setup storage backend.
type MemoryStore struct {
	mu      sync.Mutex
	records []*services.Checkin
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Append(c *services.Checkin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := *c
	s.records = append(s.records, &rec)
	return nil
}

func (s *MemoryStore) LoadAll() ([]*services.Checkin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*services.Checkin, 0, len(s.records))
	for _, c := range s.records {
		rec := *c
		out = append(out, &rec)
	}
	return out, nil
}
