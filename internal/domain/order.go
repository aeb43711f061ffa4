package domain

import "time"

// OrderType is the kind of settlement an order requests. DEPOSIT is
// used on transactions only; orders are always BUY or SELL.
type OrderType string

const (
	OrderTypeBuy     OrderType = "BUY"
	OrderTypeSell    OrderType = "SELL"
	OrderTypeDeposit OrderType = "DEPOSIT"
)

// Order is an immutable record of a settlement request. It is written
// once by the settlement engine before the position update and never
// mutated afterwards.
type Order struct {
	OrderID    string
	Type       OrderType
	SubmitDate time.Time
	SecurityID string
	Price      float64 // unit price at settlement
	Quantity   float64
}
