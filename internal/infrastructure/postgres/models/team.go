package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TeamModel struct {
	ID        string          `gorm:"primaryKey"`
	UserID    string          `gorm:"uniqueIndex;not null"`
	Name      string          `gorm:"not null"`
	Budget    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (TeamModel) TableName() string {
	return "teams"
}

// RosterEntryModel - ownership row. The unique index on player_id enforces
// "a player belongs to at most one team" at the storage level.
type RosterEntryModel struct {
	TeamID    string `gorm:"primaryKey"`
	PlayerID  uint   `gorm:"primaryKey;uniqueIndex:uniq_player_roster"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (RosterEntryModel) TableName() string {
	return "team_players"
}
