// Package ledger owns all position mutation. Every settlement delta,
// including cash adjustments, goes through the Ledger so that
// concurrent settlements serialize and quantity/book-value updates are
// never lost.
package ledger

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jdesmond91/trading-backend/internal/domain"
	"github.com/jdesmond91/trading-backend/internal/store"
)

// Ledger applies settlement deltas to position records. A single
// mutex serializes all read-modify-write cycles; settlements against
// the same security can therefore never interleave.
type Ledger struct {
	mu         sync.Mutex
	positions  *store.PositionStore
	securities *store.SecurityStore
}

// New creates a Ledger over the given stores.
func New(positions *store.PositionStore, securities *store.SecurityStore) *Ledger {
	return &Ledger{
		positions:  positions,
		securities: securities,
	}
}

// Settle applies one settlement delta to the position for securityID.
//
// DEPOSIT and BUY create the position when absent ({quantity, bookValue:
// total}) and otherwise add quantity and total to it. SELL requires an
// existing position holding at least quantity; selling the exact held
// quantity deletes the position and returns nil, a partial sell
// subtracts quantity and total. SELL fails with
// domain.ErrInsufficientHoldings without touching the position.
func (l *Ledger) Settle(securityID string, quantity float64, orderType domain.OrderType, total float64) (*domain.Position, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settleLocked(securityID, quantity, orderType, total)
}

func (l *Ledger) settleLocked(securityID string, quantity float64, orderType domain.OrderType, total float64) (*domain.Position, error) {
	pos, exists := l.positions.FindBySecurity(securityID)

	switch orderType {
	case domain.OrderTypeDeposit, domain.OrderTypeBuy:
		if !exists {
			created := domain.Position{
				PositionID: uuid.NewString(),
				SecurityID: securityID,
				Quantity:   quantity,
				BookValue:  total,
			}
			if err := l.positions.Insert(created); err != nil {
				return nil, err
			}
			return &created, nil
		}
		pos.Quantity += quantity
		pos.BookValue += total
		updated, err := l.positions.Update(pos)
		if err != nil {
			return nil, err
		}
		return &updated, nil

	case domain.OrderTypeSell:
		if !exists || pos.Quantity < quantity {
			return nil, domain.ErrInsufficientHoldings
		}
		if pos.Quantity == quantity {
			if err := l.positions.Delete(securityID); err != nil {
				return nil, err
			}
			return nil, nil
		}
		pos.Quantity -= quantity
		pos.BookValue -= total
		updated, err := l.positions.Update(pos)
		if err != nil {
			return nil, err
		}
		return &updated, nil

	default:
		return nil, &domain.ValidationError{Message: "unknown order type: " + string(orderType)}
	}
}

// GetPosition returns the position for a security, or nil when none
// exists.
func (l *Ledger) GetPosition(securityID string) *domain.Position {
	pos, ok := l.positions.FindBySecurity(securityID)
	if !ok {
		return nil
	}
	return &pos
}

// GetCashPosition resolves the cash security and returns its position.
// It returns domain.ErrCashSecurityMissing when no CASH security
// exists, and (nil, nil) when the security exists but no deposit has
// created a position yet. Callers must treat nil specially: it means
// "never funded", not "zero cash".
func (l *Ledger) GetCashPosition() (*domain.Position, error) {
	cash, err := l.securities.FindCash()
	if err != nil {
		return nil, err
	}
	return l.GetPosition(cash.ID), nil
}

// UpdateCash adjusts the cash position by the total of a settled
// trade: BUY subtracts total from quantity and book value, SELL and
// DEPOSIT add it. This is distinct from Settle because the delta is
// the traded security's total, not units of cash. It returns
// domain.ErrCashPositionMissing when no cash position exists.
func (l *Ledger) UpdateCash(total float64, orderType domain.OrderType) (*domain.Position, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cash, err := l.securities.FindCash()
	if err != nil {
		return nil, err
	}
	pos, exists := l.positions.FindBySecurity(cash.ID)
	if !exists {
		return nil, domain.ErrCashPositionMissing
	}

	if orderType == domain.OrderTypeBuy {
		pos.Quantity -= total
		pos.BookValue -= total
	} else {
		pos.Quantity += total
		pos.BookValue += total
	}

	updated, err := l.positions.Update(pos)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Restore puts the position for securityID back to a prior snapshot:
// the current record is replaced by prior, or removed when prior is
// nil. The settlement engine uses this to compensate a settle whose
// follow-up steps failed.
func (l *Ledger) Restore(securityID string, prior *domain.Position) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, exists := l.positions.FindBySecurity(securityID)
	switch {
	case prior == nil && exists:
		_ = l.positions.Delete(securityID)
	case prior != nil && exists:
		_, _ = l.positions.Update(*prior)
	case prior != nil && !exists:
		_ = l.positions.Insert(*prior)
	}
}

// List returns all positions.
func (l *Ledger) List() []domain.Position {
	return l.positions.List()
}
