package domain

// SecurityKind distinguishes the designated cash security from
// tradeable equities. Exactly one CASH security may exist; its
// position is the ledger's cash balance.
type SecurityKind string

const (
	SecurityKindCash   SecurityKind = "CASH"
	SecurityKindEquity SecurityKind = "EQUITY"
)

// Security is a catalog entry that orders and positions reference.
// Immutable after creation except administrative delete.
type Security struct {
	ID     string
	Name   string
	Ticker string
	Kind   SecurityKind
}
