package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jdesmond91/trading-backend/internal/domain"
	"github.com/jdesmond91/trading-backend/internal/service"
)

// SecurityHandler handles HTTP requests for security endpoints.
type SecurityHandler struct {
	securitySvc *service.SecurityService
}

// NewSecurityHandler creates a new SecurityHandler.
func NewSecurityHandler(securitySvc *service.SecurityService) *SecurityHandler {
	return &SecurityHandler{securitySvc: securitySvc}
}

// createSecurityRequest is the JSON request body for POST /securities.
type createSecurityRequest struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Type   string `json:"type"`
}

// securityResponse is the JSON representation of a security.
type securityResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Type   string `json:"type"`
}

func buildSecurityResponse(sec domain.Security) securityResponse {
	return securityResponse{
		ID:     sec.ID,
		Name:   sec.Name,
		Ticker: sec.Ticker,
		Type:   string(sec.Kind),
	}
}

// List handles GET /securities.
func (h *SecurityHandler) List(w http.ResponseWriter, r *http.Request) {
	securities := h.securitySvc.List()
	resp := make([]securityResponse, 0, len(securities))
	for _, sec := range securities {
		resp = append(resp, buildSecurityResponse(sec))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Create handles POST /securities.
func (h *SecurityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSecurityRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sec, err := h.securitySvc.Create(service.CreateSecurityRequest{
		Name:   req.Name,
		Ticker: req.Ticker,
		Kind:   domain.SecurityKind(req.Type),
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildSecurityResponse(*sec))
}

// Delete handles DELETE /securities/{id}.
func (h *SecurityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.securitySvc.Delete(id); err != nil {
		mapDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
