package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DF"
	PositionMidfielder Position = "MF"
	PositionForward    Position = "FW"
)

// Positions in draft order. Draft picks run position by position, so this
// order is part of the allocator's deterministic behaviour.
var Positions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionForward,
}

// DraftQuota is the number of players drafted per position (20 total).
var DraftQuota = map[Position]int{
	PositionGoalkeeper: 1,
	PositionDefender:   7,
	PositionMidfielder: 7,
	PositionForward:    5,
}

type Player struct {
	ID          uint
	Name        string
	Position    Position
	MarketValue decimal.Decimal
	CreatedAt   time.Time
}
