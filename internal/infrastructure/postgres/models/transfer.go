package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferModel - append-only trade ledger. Rows are never updated.
type TransferModel struct {
	ID           string          `gorm:"primaryKey"`
	Reference    string          `gorm:"uniqueIndex;not null"`
	BuyerTeamID  string          `gorm:"index;not null"`
	SellerTeamID string          `gorm:"index;not null"`
	PlayerID     uint            `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
}

func (TransferModel) TableName() string {
	return "transactions"
}
