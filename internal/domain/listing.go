package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is an offer to sell one owned player. While the listing exists the
// player belongs to it, not to any roster.
type Listing struct {
	ID           string
	PlayerID     uint
	SellerTeamID string
	AskingPrice  decimal.Decimal
	PostedAt     time.Time
}

// ListingView is a listing joined with the names the market page shows.
type ListingView struct {
	ID             string
	PlayerID       uint
	PlayerName     string
	SellerTeamID   string
	SellerTeamName string
	AskingPrice    decimal.Decimal
	PostedAt       time.Time
}

// ListingFilter narrows a market search. Name filters match case-insensitive
// substrings; a nil MaxPrice means unbounded.
type ListingFilter struct {
	TeamName   string
	PlayerName string
	MaxPrice   *decimal.Decimal
}
