package handler

import (
	"net/http"

	"github.com/jdesmond91/trading-backend/internal/domain"
	"github.com/jdesmond91/trading-backend/internal/service"
)

// PositionHandler handles HTTP requests for position and valuation
// endpoints. All endpoints are read-only.
type PositionHandler struct {
	positionSvc *service.PositionService
}

// NewPositionHandler creates a new PositionHandler.
func NewPositionHandler(positionSvc *service.PositionService) *PositionHandler {
	return &PositionHandler{positionSvc: positionSvc}
}

// positionResponse is the JSON representation of a position joined
// with its security.
type positionResponse struct {
	ID        string           `json:"id"`
	Security  securityResponse `json:"security"`
	Quantity  float64          `json:"quantity"`
	BookValue float64          `json:"bookValue"`
}

// netWorthResponse is the JSON response for GET /positions/networth.
type netWorthResponse struct {
	BookValue   float64 `json:"bookValue"`
	MarketValue float64 `json:"marketValue"`
}

func buildPositionResponse(p domain.Position, sec domain.Security) positionResponse {
	return positionResponse{
		ID:        p.PositionID,
		Security:  buildSecurityResponse(sec),
		Quantity:  p.Quantity,
		BookValue: p.BookValue,
	}
}

func buildPositionResponses(views []service.PositionView) []positionResponse {
	resp := make([]positionResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, buildPositionResponse(v.Position, v.Security))
	}
	return resp
}

// List handles GET /positions.
func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, buildPositionResponses(h.positionSvc.List()))
}

// Equity handles GET /positions/equity.
func (h *PositionHandler) Equity(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, buildPositionResponses(h.positionSvc.Equity()))
}

// Cash handles GET /positions/cash. The body is null when no deposit
// has created a cash position yet; that is distinct from zero cash.
func (h *PositionHandler) Cash(w http.ResponseWriter, r *http.Request) {
	pos, err := h.positionSvc.Cash()
	if err != nil {
		mapDomainError(w, err)
		return
	}
	if pos == nil {
		WriteJSON(w, http.StatusOK, nil)
		return
	}

	value, err := h.positionSvc.CashValue()
	if err != nil {
		mapDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"id":        pos.PositionID,
		"quantity":  pos.Quantity,
		"bookValue": value,
	})
}

// NetWorth handles GET /positions/networth.
func (h *PositionHandler) NetWorth(w http.ResponseWriter, r *http.Request) {
	nw, err := h.positionSvc.NetWorth(r.Context())
	if err != nil {
		mapDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, netWorthResponse{
		BookValue:   nw.BookValue,
		MarketValue: nw.MarketValue,
	})
}
