package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jdesmond91/trading-backend/internal/domain"
	"github.com/jdesmond91/trading-backend/internal/ledger"
	"github.com/jdesmond91/trading-backend/internal/store"
)

// stubPrices resolves tickers from a fixed table.
type stubPrices struct {
	prices map[string]float64
	err    error
}

func (s *stubPrices) Price(ctx context.Context, ticker string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.prices[ticker], nil
}

type testPositionEnv struct {
	ledger *ledger.Ledger
	prices *stubPrices
	svc    *PositionService
}

func newTestPositionEnv(t *testing.T) *testPositionEnv {
	t.Helper()
	ss := store.NewSecurityStore()
	ps := store.NewPositionStore()
	for _, sec := range []domain.Security{
		{ID: "cad", Name: "Canadian Dollar", Ticker: "CAD", Kind: domain.SecurityKindCash},
		{ID: "ry", Name: "Royal Bank", Ticker: "RY", Kind: domain.SecurityKindEquity},
		{ID: "td", Name: "TD Bank", Ticker: "TD", Kind: domain.SecurityKindEquity},
	} {
		if err := ss.Create(sec); err != nil {
			t.Fatalf("create security %s: %v", sec.ID, err)
		}
	}
	l := ledger.New(ps, ss)
	prices := &stubPrices{prices: map[string]float64{}}
	return &testPositionEnv{
		ledger: l,
		prices: prices,
		svc:    NewPositionService(l, ss, prices),
	}
}

func (env *testPositionEnv) settle(t *testing.T, securityID string, quantity float64, orderType domain.OrderType, total float64) {
	t.Helper()
	if _, err := env.ledger.Settle(securityID, quantity, orderType, total); err != nil {
		t.Fatalf("settle %s: %v", securityID, err)
	}
}

func TestPositionService_ListJoinsSecurities(t *testing.T) {
	env := newTestPositionEnv(t)
	env.settle(t, "cad", 2000, domain.OrderTypeDeposit, 2000)
	env.settle(t, "ry", 5, domain.OrderTypeBuy, 500)

	views := env.svc.List()
	if len(views) != 2 {
		t.Fatalf("got %d positions, want 2", len(views))
	}
	// List is sorted by security id: cad before ry.
	if views[0].Security.Ticker != "CAD" || views[1].Security.Ticker != "RY" {
		t.Errorf("views = %+v", views)
	}
}

func TestPositionService_EquityExcludesCash(t *testing.T) {
	env := newTestPositionEnv(t)
	env.settle(t, "cad", 2000, domain.OrderTypeDeposit, 2000)
	env.settle(t, "ry", 5, domain.OrderTypeBuy, 500)
	env.settle(t, "td", 10, domain.OrderTypeBuy, 800)

	views := env.svc.Equity()
	if len(views) != 2 {
		t.Fatalf("got %d equity positions, want 2", len(views))
	}
	for _, v := range views {
		if v.Security.Kind != domain.SecurityKindEquity {
			t.Errorf("non-equity position in Equity(): %+v", v)
		}
	}
}

func TestPositionService_CashValue(t *testing.T) {
	env := newTestPositionEnv(t)

	// Never funded: zero, not an error.
	got, err := env.svc.CashValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("CashValue() = %v, want 0", got)
	}

	env.settle(t, "cad", 1000.005, domain.OrderTypeDeposit, 1000.005)
	got, err = env.svc.CashValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1000.01 {
		t.Errorf("CashValue() = %v, want 1000.01", got)
	}
}

func TestPositionService_CashNilWhenNeverFunded(t *testing.T) {
	env := newTestPositionEnv(t)

	pos, err := env.svc.Cash()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos != nil {
		t.Errorf("Cash() = %+v, want nil", pos)
	}
}

func TestPositionService_NetWorth(t *testing.T) {
	env := newTestPositionEnv(t)
	env.settle(t, "cad", 700, domain.OrderTypeDeposit, 700)
	env.settle(t, "ry", 5, domain.OrderTypeBuy, 500)  // 5 @ 100 book
	env.settle(t, "td", 10, domain.OrderTypeBuy, 800) // 10 @ 80 book
	env.prices.prices = map[string]float64{"RY": 120, "TD": 75}

	nw, err := env.svc.NetWorth(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Book: 700 cash + 500 + 800. Market: 700 cash + 5*120 + 10*75.
	if nw.BookValue != 2000 {
		t.Errorf("BookValue = %v, want 2000", nw.BookValue)
	}
	if nw.MarketValue != 2050 {
		t.Errorf("MarketValue = %v, want 2050", nw.MarketValue)
	}
}

func TestPositionService_NetWorthEmptyLedger(t *testing.T) {
	env := newTestPositionEnv(t)

	nw, err := env.svc.NetWorth(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nw.BookValue != 0 || nw.MarketValue != 0 {
		t.Errorf("NetWorth = %+v, want zeros", nw)
	}
}

func TestPositionService_NetWorthPriceUnavailable(t *testing.T) {
	env := newTestPositionEnv(t)
	env.settle(t, "cad", 2000, domain.OrderTypeDeposit, 2000)
	env.settle(t, "ry", 5, domain.OrderTypeBuy, 500)
	env.prices.err = domain.ErrPriceUnavailable

	_, err := env.svc.NetWorth(context.Background())
	if !errors.Is(err, domain.ErrPriceUnavailable) {
		t.Errorf("got %v, want ErrPriceUnavailable", err)
	}
}
