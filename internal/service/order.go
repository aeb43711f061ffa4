package service

import (
	"context"

	"github.com/jdesmond91/trading-backend/internal/domain"
	"github.com/jdesmond91/trading-backend/internal/engine"
	"github.com/jdesmond91/trading-backend/internal/store"
)

// OrderView is an order joined with its security for listings.
type OrderView struct {
	Order    domain.Order
	Security domain.Security
}

// OrderService fronts the settlement engine for order submission and
// exposes order listings joined with their securities.
type OrderService struct {
	settlement *engine.Settlement
	orders     *store.OrderStore
	securities *store.SecurityStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(settlement *engine.Settlement, orders *store.OrderStore, securities *store.SecurityStore) *OrderService {
	return &OrderService{
		settlement: settlement,
		orders:     orders,
		securities: securities,
	}
}

// Submit runs one order through the settlement engine and returns the
// persisted order joined with its security.
func (s *OrderService) Submit(ctx context.Context, req engine.SubmitOrderRequest) (*OrderView, error) {
	if req.SecurityID == "" {
		return nil, &domain.ValidationError{Message: "securityId is required"}
	}
	order, err := s.settlement.SubmitOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	sec, err := s.securities.Get(order.SecurityID)
	if err != nil {
		sec = domain.Security{ID: order.SecurityID}
	}
	return &OrderView{Order: *order, Security: sec}, nil
}

// List returns all orders newest first, each joined with its security.
// Orders whose security was deleted are listed with a zero security.
func (s *OrderService) List() []OrderView {
	orders := s.orders.List()
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		sec, err := s.securities.Get(o.SecurityID)
		if err != nil {
			sec = domain.Security{ID: o.SecurityID}
		}
		views = append(views, OrderView{Order: o, Security: sec})
	}
	return views
}
