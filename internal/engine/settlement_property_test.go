package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/jdesmond91/trading-backend/internal/domain"
	"pgregory.net/rapid"
)

// Cash moves by exactly the order total: a BUY of total T decreases
// cash by T, a SELL or DEPOSIT increases it by T, and a rejected order
// leaves it untouched. Integer quantities and prices keep the float
// arithmetic exact.
func TestProperty_CashDeltaMatchesOrderTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		env := newTestSettlementEnv(t)
		env.deposit(t, float64(rapid.IntRange(1_000, 100_000).Draw(t, "opening")))

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			before := env.cashQuantity(t)
			quantity := float64(rapid.IntRange(1, 50).Draw(t, "quantity"))
			price := float64(rapid.IntRange(1, 200).Draw(t, "price"))
			total := price * quantity

			var orderType domain.OrderType
			if rapid.Bool().Draw(t, "sell") {
				orderType = domain.OrderTypeSell
			} else {
				orderType = domain.OrderTypeBuy
			}

			_, err := env.engine.SubmitOrder(context.Background(), SubmitOrderRequest{
				Type:       orderType,
				SecurityID: "ry",
				Quantity:   quantity,
				Price:      &price,
			})
			after := env.cashQuantity(t)

			switch {
			case errors.Is(err, domain.ErrInsufficientFunds),
				errors.Is(err, domain.ErrInsufficientHoldings):
				if after != before {
					t.Fatalf("rejected order moved cash: %v -> %v", before, after)
				}
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			case orderType == domain.OrderTypeBuy:
				if after != before-total {
					t.Fatalf("BUY total %v: cash %v -> %v", total, before, after)
				}
			default:
				if after != before+total {
					t.Fatalf("SELL total %v: cash %v -> %v", total, before, after)
				}
			}

			if after < 0 {
				t.Fatalf("cash went negative: %v", after)
			}
		}
	})
}
