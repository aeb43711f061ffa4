package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/jdesmond91/trading-backend/internal/domain"
)

// PositionStore is a thread-safe in-memory store for positions, keyed
// by security id (positions are unique per security). Values are
// copied in and out so readers never observe in-place mutation.
type PositionStore struct {
	mu        sync.RWMutex
	positions map[string]domain.Position
}

// NewPositionStore creates an empty PositionStore.
func NewPositionStore() *PositionStore {
	return &PositionStore{
		positions: make(map[string]domain.Position),
	}
}

// Insert adds a position. A position for the security must not
// already exist; the ledger checks before inserting, so a duplicate
// here is a persistence-level fault.
func (s *PositionStore) Insert(p domain.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.positions[p.SecurityID]; exists {
		return &domain.PersistenceError{Op: "position insert", Err: errors.New("position already exists")}
	}
	s.positions[p.SecurityID] = p
	return nil
}

// FindBySecurity retrieves the position for a security. The boolean is
// false when no position exists.
func (s *PositionStore) FindBySecurity(securityID string) (domain.Position, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.positions[securityID]
	return p, ok
}

// Update replaces the stored position for p's security and returns the
// updated record. It returns domain.ErrPositionNotFound if no position
// exists for that security.
func (s *PositionStore) Update(p domain.Position) (domain.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.positions[p.SecurityID]; !ok {
		return domain.Position{}, domain.ErrPositionNotFound
	}
	s.positions[p.SecurityID] = p
	return p, nil
}

// Delete removes the position for a security. It returns
// domain.ErrPositionNotFound if no position exists.
func (s *PositionStore) Delete(securityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.positions[securityID]; !ok {
		return domain.ErrPositionNotFound
	}
	delete(s.positions, securityID)
	return nil
}

// List returns all positions sorted by security id for stable output.
func (s *PositionStore) List() []domain.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Position, 0, len(s.positions))
	for _, p := range s.positions {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SecurityID < result[j].SecurityID
	})
	return result
}
