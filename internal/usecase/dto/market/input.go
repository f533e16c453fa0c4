package market

import "github.com/shopspring/decimal"

type CreateListingInput struct {
	PlayerID    uint
	AskingPrice decimal.Decimal
}

type ListingFilterInput struct {
	TeamName   string
	PlayerName string
	MaxPrice   *decimal.Decimal
}
