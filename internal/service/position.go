package service

import (
	"context"

	"github.com/jdesmond91/trading-backend/internal/domain"
	"github.com/jdesmond91/trading-backend/internal/engine"
	"github.com/jdesmond91/trading-backend/internal/ledger"
	"github.com/jdesmond91/trading-backend/internal/store"
)

// PositionView is a position joined with its security.
type PositionView struct {
	Position domain.Position
	Security domain.Security
}

// NetWorth totals the ledger's positions: BookValue sums every
// position's cost basis, MarketValue replaces equity cost basis with
// quantity times live price (cash contributes its book value to both).
type NetWorth struct {
	BookValue   float64
	MarketValue float64
}

// PositionService is the read-only valuation reporter. It combines
// ledger positions with live prices and never writes.
type PositionService struct {
	ledger     *ledger.Ledger
	securities *store.SecurityStore
	oracle     engine.PriceSource
}

// NewPositionService creates a new PositionService.
func NewPositionService(l *ledger.Ledger, securities *store.SecurityStore, oracle engine.PriceSource) *PositionService {
	return &PositionService{
		ledger:     l,
		securities: securities,
		oracle:     oracle,
	}
}

// List returns all positions joined with their securities.
func (s *PositionService) List() []PositionView {
	positions := s.ledger.List()
	views := make([]PositionView, 0, len(positions))
	for _, p := range positions {
		sec, err := s.securities.Get(p.SecurityID)
		if err != nil {
			sec = domain.Security{ID: p.SecurityID}
		}
		views = append(views, PositionView{Position: p, Security: sec})
	}
	return views
}

// Equity returns only positions in EQUITY securities.
func (s *PositionService) Equity() []PositionView {
	all := s.List()
	views := make([]PositionView, 0, len(all))
	for _, v := range all {
		if v.Security.Kind == domain.SecurityKindEquity {
			views = append(views, v)
		}
	}
	return views
}

// Cash returns the cash position, or nil when no deposit has created
// one yet.
func (s *PositionService) Cash() (*domain.Position, error) {
	return s.ledger.GetCashPosition()
}

// CashValue returns the cash position's book value rounded to 2
// decimals, or 0 when no cash position exists.
func (s *PositionService) CashValue() (float64, error) {
	pos, err := s.ledger.GetCashPosition()
	if err != nil {
		return 0, err
	}
	if pos == nil {
		return 0, nil
	}
	return domain.Round2(pos.BookValue), nil
}

// NetWorth totals book and market value across the cash position and
// every equity position, fetching live prices from the oracle.
// Rounding happens once on the final totals, not per position.
func (s *PositionService) NetWorth(ctx context.Context) (NetWorth, error) {
	var nw NetWorth

	cash, err := s.ledger.GetCashPosition()
	if err != nil {
		return NetWorth{}, err
	}
	if cash != nil {
		nw.BookValue += cash.BookValue
		nw.MarketValue += cash.BookValue
	}

	for _, v := range s.Equity() {
		price, err := s.oracle.Price(ctx, v.Security.Ticker)
		if err != nil {
			return NetWorth{}, err
		}
		nw.MarketValue += v.Position.Quantity * price
		nw.BookValue += v.Position.BookValue
	}

	nw.BookValue = domain.Round2(nw.BookValue)
	nw.MarketValue = domain.Round2(nw.MarketValue)
	return nw, nil
}
