package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// RosterMin is the floor a team may never sell below.
	RosterMin = 15
	// RosterMax is the ceiling a team may never buy above.
	RosterMax = 25
)

// DraftBudgetCap is the total value ceiling for a drafted squad. The team's
// starting budget is the cap minus the cost of the drafted players.
var DraftBudgetCap = decimal.NewFromInt(5_000_000)

type Team struct {
	ID        string
	UserID    string
	Name      string
	Budget    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RosterEntry binds a player to a team. Row existence is ownership: a listed
// player has no roster entry for the duration of the listing.
type RosterEntry struct {
	TeamID    string
	PlayerID  uint
	CreatedAt time.Time
}
