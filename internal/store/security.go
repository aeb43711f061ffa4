package store

import (
	"sort"
	"sync"

	"github.com/jdesmond91/trading-backend/internal/domain"
)

// SecurityStore is a thread-safe in-memory store for the security
// catalog, keyed by id. It enforces the single-cash-security rule at
// insertion time.
type SecurityStore struct {
	mu         sync.RWMutex
	securities map[string]domain.Security
}

// NewSecurityStore creates an empty SecurityStore.
func NewSecurityStore() *SecurityStore {
	return &SecurityStore{
		securities: make(map[string]domain.Security),
	}
}

// Create adds a security to the catalog. It returns
// domain.ErrSecurityExists if the id is already taken and
// domain.ErrCashSecurityExists if a CASH security already exists.
func (s *SecurityStore) Create(sec domain.Security) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.securities[sec.ID]; exists {
		return domain.ErrSecurityExists
	}
	if sec.Kind == domain.SecurityKindCash {
		for _, existing := range s.securities {
			if existing.Kind == domain.SecurityKindCash {
				return domain.ErrCashSecurityExists
			}
		}
	}
	s.securities[sec.ID] = sec
	return nil
}

// Get retrieves a security by id. It returns
// domain.ErrSecurityNotFound if the security does not exist.
func (s *SecurityStore) Get(id string) (domain.Security, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sec, ok := s.securities[id]
	if !ok {
		return domain.Security{}, domain.ErrSecurityNotFound
	}
	return sec, nil
}

// FindCash returns the designated cash security. It returns
// domain.ErrCashSecurityMissing if no CASH security exists.
func (s *SecurityStore) FindCash() (domain.Security, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sec := range s.securities {
		if sec.Kind == domain.SecurityKindCash {
			return sec, nil
		}
	}
	return domain.Security{}, domain.ErrCashSecurityMissing
}

// List returns all securities sorted by name.
func (s *SecurityStore) List() []domain.Security {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Security, 0, len(s.securities))
	for _, sec := range s.securities {
		result = append(result, sec)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Delete removes a security by id. It returns
// domain.ErrSecurityNotFound if the security does not exist.
func (s *SecurityStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.securities[id]; !ok {
		return domain.ErrSecurityNotFound
	}
	delete(s.securities, id)
	return nil
}
