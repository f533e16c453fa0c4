package team

import "github.com/shopspring/decimal"

type PlayerOutput struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Position    string          `json:"position"`
	MarketValue decimal.Decimal `json:"marketValue"`
}

type TeamOutput struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Budget  decimal.Decimal `json:"budget"`
	Players []PlayerOutput  `json:"players"`
}
