package market

import (
	"time"

	"github.com/shopspring/decimal"
)

type ListingOutput struct {
	ID             string          `json:"id"`
	PlayerID       uint            `json:"playerId"`
	PlayerName     string          `json:"playerName"`
	SellerTeamID   string          `json:"sellerTeamId"`
	SellerTeamName string          `json:"sellerTeamName"`
	AskingPrice    decimal.Decimal `json:"askingPrice"`
	PostedAt       time.Time       `json:"postedAt"`
}

type TradeOutput struct {
	Reference string          `json:"reference"`
	Price     decimal.Decimal `json:"price"`
}
