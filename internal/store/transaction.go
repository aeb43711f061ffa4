package store

import (
	"sync"
	"time"

	"github.com/google/btree"
	"github.com/google/uuid"
	"github.com/jdesmond91/trading-backend/internal/domain"
)

// txEntry keys a transaction by (date, seq) for ordered iteration.
type txEntry struct {
	date time.Time
	seq  uint64
	tx   domain.Transaction
}

// txLess orders entries newest first: date descending, then seq
// descending. Min() is therefore always the most recent transaction.
func txLess(a, b txEntry) bool {
	if !a.date.Equal(b.date) {
		return a.date.After(b.date)
	}
	return a.seq > b.seq
}

// TransactionStore is the append-only transaction log. Records are
// kept in a B-tree keyed by (date, seq) so listing newest-first is an
// in-order walk.
type TransactionStore struct {
	mu      sync.RWMutex
	tree    *btree.BTreeG[txEntry]
	byID    map[string]txEntry
	nextSeq uint64
}

// NewTransactionStore creates an empty TransactionStore.
func NewTransactionStore() *TransactionStore {
	const degree = 32
	return &TransactionStore{
		tree: btree.NewG[txEntry](degree, txLess),
		byID: make(map[string]txEntry),
	}
}

// Record appends a transaction for a completed settlement and returns
// it. Price and orderID are nil for deposits.
func (s *TransactionStore) Record(txType domain.OrderType, quantity float64, price *float64, orderID *string) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          txType,
		Date:          time.Now(),
		Quantity:      quantity,
		Price:         price,
		OrderID:       orderID,
	}
	entry := txEntry{date: tx.Date, seq: s.nextSeq, tx: tx}
	s.nextSeq++
	s.tree.ReplaceOrInsert(entry)
	s.byID[tx.TransactionID] = entry
	return tx, nil
}

// List returns all transactions newest first.
func (s *TransactionStore) List() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Transaction, 0, s.tree.Len())
	s.tree.Ascend(func(e txEntry) bool {
		result = append(result, e.tx)
		return true
	})
	return result
}

// Remove deletes a transaction by id. The log has no delete path in
// the normal flow; this exists only so settlement compensation can
// retract a record whose settlement never completed. Removing an
// unknown id is a no-op.
func (s *TransactionStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.byID[id]
	if !ok {
		return nil
	}
	s.tree.Delete(entry)
	delete(s.byID, id)
	return nil
}
