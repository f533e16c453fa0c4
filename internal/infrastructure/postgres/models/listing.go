package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingModel - active sale offers. The unique index on player_id is the
// storage-level guarantee that a player has at most one active listing.
type ListingModel struct {
	ID           string          `gorm:"primaryKey"`
	PlayerID     uint            `gorm:"uniqueIndex;not null"`
	SellerTeamID string          `gorm:"index;not null"`
	AskingPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PostedAt     time.Time       `gorm:"autoCreateTime;index"`
}

func (ListingModel) TableName() string {
	return "transfer_listings"
}
