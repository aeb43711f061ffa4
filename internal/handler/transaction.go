package handler

import (
	"net/http"
	"time"

	"github.com/jdesmond91/trading-backend/internal/service"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
type TransactionHandler struct {
	transactionSvc *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionSvc *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionSvc: transactionSvc}
}

// depositRequest is the JSON request body for POST /transactions/deposit.
type depositRequest struct {
	Quantity float64 `json:"quantity"`
}

// transactionResponse is the JSON representation of a transaction.
// Price and order are omitted for deposits.
type transactionResponse struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Date     string         `json:"date"`
	Quantity float64        `json:"quantity"`
	Price    *float64       `json:"price,omitempty"`
	Order    *orderResponse `json:"order,omitempty"`
}

func buildTransactionResponse(v service.TransactionView) transactionResponse {
	resp := transactionResponse{
		ID:       v.Transaction.TransactionID,
		Type:     string(v.Transaction.Type),
		Date:     v.Transaction.Date.UTC().Format(time.RFC3339),
		Quantity: v.Transaction.Quantity,
		Price:    v.Transaction.Price,
	}
	if v.Order != nil && v.Security != nil {
		o := buildOrderResponse(*v.Order, *v.Security)
		resp.Order = &o
	}
	return resp
}

// List handles GET /transactions. Transactions are returned newest
// first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	views := h.transactionSvc.List()
	resp := make([]transactionResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, buildTransactionResponse(v))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Deposit handles POST /transactions/deposit.
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	tx, err := h.transactionSvc.Deposit(req.Quantity)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildTransactionResponse(service.TransactionView{Transaction: *tx}))
}
