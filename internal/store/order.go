package store

import (
	"sync"

	"github.com/jdesmond91/trading-backend/internal/domain"
)

// OrderStore is a thread-safe in-memory store for orders, with a
// primary index by order id and an append-only chronological list.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	byTime []string // order ids, oldest first
}

// NewOrderStore creates an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[string]domain.Order),
	}
}

// Create adds an order to the store.
func (s *OrderStore) Create(o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.OrderID] = o
	s.byTime = append(s.byTime, o.OrderID)
	return nil
}

// Get retrieves an order by id. It returns
// domain.ErrOrderNotFound if the order does not exist.
func (s *OrderStore) Get(id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

// List returns all orders in reverse chronological order (newest
// first).
func (s *OrderStore) List() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Order, 0, len(s.byTime))
	for i := len(s.byTime) - 1; i >= 0; i-- {
		if o, ok := s.orders[s.byTime[i]]; ok {
			result = append(result, o)
		}
	}
	return result
}

// Delete removes an order by id. Orders are immutable through the
// normal flow; this exists only for settlement compensation. It
// returns domain.ErrOrderNotFound if the order does not exist.
func (s *OrderStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(s.orders, id)
	for i, oid := range s.byTime {
		if oid == id {
			s.byTime = append(s.byTime[:i], s.byTime[i+1:]...)
			break
		}
	}
	return nil
}
