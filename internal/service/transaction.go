package service

import (
	"github.com/jdesmond91/trading-backend/internal/domain"
	"github.com/jdesmond91/trading-backend/internal/engine"
	"github.com/jdesmond91/trading-backend/internal/store"
)

// TransactionView is a transaction joined with its order's security,
// when the transaction came from an order.
type TransactionView struct {
	Transaction domain.Transaction
	Order       *domain.Order
	Security    *domain.Security
}

// TransactionService exposes the transaction log and the deposit flow.
type TransactionService struct {
	settlement   *engine.Settlement
	transactions *store.TransactionStore
	orders       *store.OrderStore
	securities   *store.SecurityStore
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	settlement *engine.Settlement,
	transactions *store.TransactionStore,
	orders *store.OrderStore,
	securities *store.SecurityStore,
) *TransactionService {
	return &TransactionService{
		settlement:   settlement,
		transactions: transactions,
		orders:       orders,
		securities:   securities,
	}
}

// Deposit settles a cash deposit of the given quantity.
func (s *TransactionService) Deposit(quantity float64) (*domain.Transaction, error) {
	return s.settlement.Deposit(quantity)
}

// List returns all transactions newest first, joined with order and
// security where the transaction references an order.
func (s *TransactionService) List() []TransactionView {
	txs := s.transactions.List()
	views := make([]TransactionView, 0, len(txs))
	for _, tx := range txs {
		view := TransactionView{Transaction: tx}
		if tx.OrderID != nil {
			if order, err := s.orders.Get(*tx.OrderID); err == nil {
				view.Order = &order
				if sec, err := s.securities.Get(order.SecurityID); err == nil {
					view.Security = &sec
				}
			}
		}
		views = append(views, view)
	}
	return views
}
