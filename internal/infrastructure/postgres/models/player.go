package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlayerModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"not null"`
	Position    string          `gorm:"index;not null"`
	MarketValue decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (PlayerModel) TableName() string {
	return "players"
}
