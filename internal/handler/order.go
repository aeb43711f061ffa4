package handler

import (
	"net/http"
	"time"

	"github.com/jdesmond91/trading-backend/internal/domain"
	"github.com/jdesmond91/trading-backend/internal/engine"
	"github.com/jdesmond91/trading-backend/internal/service"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// submitOrderRequest is the JSON request body for POST /orders.
// Price is optional; when omitted the price oracle resolves it.
type submitOrderRequest struct {
	Type       string   `json:"type"`
	SecurityID string   `json:"securityId"`
	Quantity   float64  `json:"quantity"`
	Price      *float64 `json:"price"`
}

// orderResponse is the JSON representation of an order joined with
// its security.
type orderResponse struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	SubmitDate string           `json:"submitDate"`
	Security   securityResponse `json:"security"`
	Price      float64          `json:"price"`
	Quantity   float64          `json:"quantity"`
}

func buildOrderResponse(o domain.Order, sec domain.Security) orderResponse {
	return orderResponse{
		ID:         o.OrderID,
		Type:       string(o.Type),
		SubmitDate: o.SubmitDate.UTC().Format(time.RFC3339),
		Security:   buildSecurityResponse(sec),
		Price:      o.Price,
		Quantity:   o.Quantity,
	}
}

// Submit handles POST /orders.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	view, err := h.orderSvc.Submit(r.Context(), engine.SubmitOrderRequest{
		Type:       domain.OrderType(req.Type),
		SecurityID: req.SecurityID,
		Quantity:   req.Quantity,
		Price:      req.Price,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildOrderResponse(view.Order, view.Security))
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	views := h.orderSvc.List()
	resp := make([]orderResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, buildOrderResponse(v.Order, v.Security))
	}
	WriteJSON(w, http.StatusOK, resp)
}
