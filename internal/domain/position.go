package domain

// Position is the holding derived from settlements against one
// security. There is at most one position per security. BookValue is
// the accumulated cost basis, not current market value.
//
// Invariant: Quantity >= 0. A position whose quantity reaches zero on
// a SELL is deleted rather than retained at zero.
type Position struct {
	PositionID string
	SecurityID string
	Quantity   float64
	BookValue  float64
}
