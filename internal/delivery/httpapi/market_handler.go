package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitchside/transfer-market-service/internal/usecase"
	marketdto "github.com/pitchside/transfer-market-service/internal/usecase/dto/market"
	"github.com/shopspring/decimal"
)

type MarketHandler struct {
	marketUC usecase.MarketUsecase
}

func NewMarketHandler(marketUC usecase.MarketUsecase) *MarketHandler {
	return &MarketHandler{marketUC: marketUC}
}

// SearchListings filters the open market. All query parameters are optional.
func (h *MarketHandler) SearchListings(c *gin.Context) {
	filter := marketdto.ListingFilterInput{
		TeamName:   c.Query("team"),
		PlayerName: c.Query("player"),
	}
	if raw := c.Query("maxPrice"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{
				Status:  "error",
				Code:    "BAD_REQUEST",
				Message: "maxPrice must be a number",
			})
			return
		}
		filter.MaxPrice = &maxPrice
	}

	listings, err := h.marketUC.SearchListings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

type createListingRequest struct {
	PlayerID    uint            `json:"playerId" binding:"required"`
	AskingPrice decimal.Decimal `json:"askingPrice"`
}

func (h *MarketHandler) CreateListing(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Status:  "error",
			Code:    "BAD_REQUEST",
			Message: err.Error(),
		})
		return
	}

	listing, err := h.marketUC.CreateListing(c.Request.Context(), callerUserID(c), marketdto.CreateListingInput{
		PlayerID:    req.PlayerID,
		AskingPrice: req.AskingPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

func (h *MarketHandler) CancelListing(c *gin.Context) {
	if err := h.marketUC.CancelListing(c.Request.Context(), callerUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MarketHandler) BuyListing(c *gin.Context) {
	trade, err := h.marketUC.ExecuteTrade(c.Request.Context(), callerUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trade)
}
