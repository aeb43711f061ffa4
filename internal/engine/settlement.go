// Package engine implements order settlement: the one flow that takes
// an order from validation through position, transaction and cash
// updates. It is the only writer of orders and the only caller that
// triggers position and transaction writes.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jdesmond91/trading-backend/internal/domain"
	"github.com/jdesmond91/trading-backend/internal/ledger"
	"github.com/jdesmond91/trading-backend/internal/store"
)

// OrderWriter persists and retracts order records.
type OrderWriter interface {
	Create(o domain.Order) error
	Delete(id string) error
}

// TransactionLog appends and retracts transaction records.
type TransactionLog interface {
	Record(txType domain.OrderType, quantity float64, price *float64, orderID *string) (domain.Transaction, error)
	Remove(id string) error
}

// PriceSource resolves a security's current unit price by ticker.
type PriceSource interface {
	Price(ctx context.Context, ticker string) (float64, error)
}

// SubmitOrderRequest is the input for a BUY or SELL settlement. Price
// is optional; when nil the price oracle is consulted.
type SubmitOrderRequest struct {
	Type       domain.OrderType
	SecurityID string
	Quantity   float64
	Price      *float64
}

// Settlement orchestrates one order at a time from validation through
// the position, transaction and cash writes. Any failure before the
// order is persisted rejects the request with no side effects; a
// failure after that point is compensated by reversing the writes
// already made, so the ledger never ends up half-settled.
type Settlement struct {
	securities *store.SecurityStore
	orders     OrderWriter
	ledger     *ledger.Ledger
	log        TransactionLog
	oracle     PriceSource
}

// NewSettlement creates a Settlement engine with the given
// collaborators.
func NewSettlement(
	securities *store.SecurityStore,
	orders OrderWriter,
	l *ledger.Ledger,
	log TransactionLog,
	oracle PriceSource,
) *Settlement {
	return &Settlement{
		securities: securities,
		orders:     orders,
		ledger:     l,
		log:        log,
		oracle:     oracle,
	}
}

// SubmitOrder settles one BUY or SELL order:
//
//  1. reject non-positive quantities,
//  2. resolve the security,
//  3. resolve the unit price (supplied or oracle),
//  4. check the cash position covers a BUY's total,
//  5. persist the order, update the position, record the transaction
//     and adjust cash, compensating already-made writes if a later
//     step fails.
//
// It returns the persisted order on success.
func (s *Settlement) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*domain.Order, error) {
	if req.Type != domain.OrderTypeBuy && req.Type != domain.OrderTypeSell {
		return nil, &domain.ValidationError{
			Message: "type must be BUY or SELL",
		}
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sec, err := s.securities.Get(req.SecurityID)
	if err != nil {
		return nil, err
	}

	price, err := s.resolvePrice(ctx, sec, req.Price)
	if err != nil {
		return nil, err
	}
	total := price * req.Quantity

	cashPos, err := s.ledger.GetCashPosition()
	if err != nil {
		return nil, err
	}
	if cashPos == nil {
		return nil, domain.ErrCashPositionMissing
	}
	if req.Type == domain.OrderTypeBuy && cashPos.Quantity < total {
		return nil, domain.ErrInsufficientFunds
	}
	if req.Type == domain.OrderTypeSell {
		held := s.ledger.GetPosition(req.SecurityID)
		if held == nil || held.Quantity < req.Quantity {
			return nil, domain.ErrInsufficientHoldings
		}
	}

	order := domain.Order{
		OrderID:    uuid.NewString(),
		Type:       req.Type,
		SubmitDate: time.Now(),
		SecurityID: req.SecurityID,
		Price:      price,
		Quantity:   req.Quantity,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	// Snapshot the position so the settle can be reversed exactly,
	// including the deleted-on-full-sell and created-on-first-buy cases.
	prior := s.ledger.GetPosition(req.SecurityID)

	if _, err := s.ledger.Settle(req.SecurityID, req.Quantity, req.Type, total); err != nil {
		_ = s.orders.Delete(order.OrderID)
		return nil, err
	}

	tx, err := s.log.Record(req.Type, req.Quantity, &price, &order.OrderID)
	if err != nil {
		s.ledger.Restore(req.SecurityID, prior)
		_ = s.orders.Delete(order.OrderID)
		return nil, err
	}

	if _, err := s.ledger.UpdateCash(total, req.Type); err != nil {
		_ = s.log.Remove(tx.TransactionID)
		s.ledger.Restore(req.SecurityID, prior)
		_ = s.orders.Delete(order.OrderID)
		return nil, err
	}

	return &order, nil
}

// Deposit settles a cash deposit: no price lookup, no sufficiency
// check; the target security is always the cash security and the
// total equals the quantity (1 unit = 1 currency unit).
func (s *Settlement) Deposit(quantity float64) (*domain.Transaction, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	cash, err := s.securities.FindCash()
	if err != nil {
		return nil, err
	}

	tx, err := s.log.Record(domain.OrderTypeDeposit, quantity, nil, nil)
	if err != nil {
		return nil, err
	}

	if _, err := s.ledger.Settle(cash.ID, quantity, domain.OrderTypeDeposit, quantity); err != nil {
		_ = s.log.Remove(tx.TransactionID)
		return nil, err
	}

	return &tx, nil
}

// resolvePrice uses the supplied price when present and otherwise
// consults the price oracle by ticker.
func (s *Settlement) resolvePrice(ctx context.Context, sec domain.Security, supplied *float64) (float64, error) {
	if supplied != nil {
		if *supplied <= 0 {
			return 0, &domain.ValidationError{Message: "price must be greater than 0"}
		}
		return *supplied, nil
	}
	return s.oracle.Price(ctx, sec.Ticker)
}
