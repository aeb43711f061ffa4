package domain

import "time"

// Transaction is an append-only audit record of a completed
// settlement. Price and OrderID are nil for deposits.
type Transaction struct {
	TransactionID string
	Type          OrderType
	Date          time.Time
	Quantity      float64
	Price         *float64
	OrderID       *string
}
