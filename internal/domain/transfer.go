package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is one row of the append-only trade ledger. Rows are never
// updated or deleted.
type Transfer struct {
	ID           string
	Reference    string
	BuyerTeamID  string
	SellerTeamID string
	PlayerID     uint
	Price        decimal.Decimal
	CreatedAt    time.Time
}
