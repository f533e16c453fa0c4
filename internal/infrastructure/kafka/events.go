package publisher

import "github.com/shopspring/decimal"

const (
	RosterEventsTopic = "roster-events"
	TradeEventsTopic  = "trade-events"

	EventRosterReady    = "roster-ready"
	EventTradeCompleted = "trade-completed"
)

// RosterReadyEvent is published once a drafted squad has been committed.
type RosterReadyEvent struct {
	Event  string `json:"event"`
	UserID string `json:"user_id"`
	TeamID string `json:"team_id"`
}

// TradeCompletedEvent is published after a trade commits. Both parties'
// users are addressed so the dispatcher can notify each side.
type TradeCompletedEvent struct {
	Event        string          `json:"event"`
	BuyerUserID  string          `json:"buyer_user_id"`
	SellerUserID string          `json:"seller_user_id"`
	PlayerID     uint            `json:"player_id"`
	Reference    string          `json:"reference"`
	Price        decimal.Decimal `json:"price"`
}
