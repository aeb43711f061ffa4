package handler

import (
	"errors"
	"net/http"

	"github.com/jdesmond91/trading-backend/internal/domain"
)

// mapDomainError maps domain errors to HTTP responses. Every core
// failure surfaces as a rejected request with a human-readable
// message; partial success is never reported as success.
func mapDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}
	var persistenceErr *domain.PersistenceError
	if errors.As(err, &persistenceErr) {
		WriteError(w, http.StatusInternalServerError, "persistence_error", persistenceErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		WriteError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be greater than 0")
	case errors.Is(err, domain.ErrSecurityNotFound):
		WriteError(w, http.StatusNotFound, "security_not_found", "security does not exist")
	case errors.Is(err, domain.ErrOrderNotFound):
		WriteError(w, http.StatusNotFound, "order_not_found", "order does not exist")
	case errors.Is(err, domain.ErrPositionNotFound):
		WriteError(w, http.StatusNotFound, "position_not_found", "position does not exist")
	case errors.Is(err, domain.ErrSecurityExists):
		WriteError(w, http.StatusConflict, "security_already_exists", "a security with this id already exists")
	case errors.Is(err, domain.ErrCashSecurityExists):
		WriteError(w, http.StatusConflict, "cash_security_already_exists", "a cash security already exists")
	case errors.Is(err, domain.ErrSecurityInUse):
		WriteError(w, http.StatusConflict, "security_in_use", "security is held by a position and cannot be deleted")
	case errors.Is(err, domain.ErrCashSecurityMissing):
		WriteError(w, http.StatusConflict, "cash_security_missing", "no cash security is defined")
	case errors.Is(err, domain.ErrCashPositionMissing):
		WriteError(w, http.StatusConflict, "cash_position_missing", "no cash has been deposited")
	case errors.Is(err, domain.ErrInsufficientFunds):
		WriteError(w, http.StatusConflict, "insufficient_funds", "cash position does not cover the order total")
	case errors.Is(err, domain.ErrInsufficientHoldings):
		WriteError(w, http.StatusConflict, "insufficient_holdings", "cannot sell more than the held quantity")
	case errors.Is(err, domain.ErrPriceUnavailable):
		WriteError(w, http.StatusBadGateway, "price_unavailable", "could not resolve a current price")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
