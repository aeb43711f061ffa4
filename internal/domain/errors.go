package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrInvalidQuantity      = errors.New("invalid_quantity")
	ErrSecurityNotFound     = errors.New("security_not_found")
	ErrSecurityExists       = errors.New("security_already_exists")
	ErrCashSecurityExists   = errors.New("cash_security_already_exists")
	ErrCashSecurityMissing  = errors.New("cash_security_missing")
	ErrCashPositionMissing  = errors.New("cash_position_missing")
	ErrInsufficientFunds    = errors.New("insufficient_funds")
	ErrInsufficientHoldings = errors.New("insufficient_holdings")
	ErrPriceUnavailable     = errors.New("price_unavailable")
	ErrPositionNotFound     = errors.New("position_not_found")
	ErrOrderNotFound        = errors.New("order_not_found")
	ErrSecurityInUse        = errors.New("security_in_use")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PersistenceError wraps a failed store operation so callers can tell
// storage faults apart from business rejections.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
