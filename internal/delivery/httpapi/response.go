package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitchside/transfer-market-service/internal/domain"
)

type errorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorMapping struct {
	status int
	code   string
}

var errorMappings = map[error]errorMapping{
	domain.ErrInvalidCredentials:   {http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	domain.ErrUsernameTaken:        {http.StatusConflict, "USERNAME_TAKEN"},
	domain.ErrRegistrationDetails:  {http.StatusBadRequest, "INVALID_REGISTRATION"},
	domain.ErrTeamNotFound:         {http.StatusNotFound, "TEAM_NOT_FOUND"},
	domain.ErrListingNotFound:      {http.StatusNotFound, "LISTING_NOT_FOUND"},
	domain.ErrNotOwner:             {http.StatusForbidden, "NOT_OWNER"},
	domain.ErrAlreadyListed:        {http.StatusConflict, "ALREADY_LISTED"},
	domain.ErrRosterTooSmall:       {http.StatusConflict, "ROSTER_TOO_SMALL"},
	domain.ErrInvalidPrice:         {http.StatusBadRequest, "INVALID_PRICE"},
	domain.ErrSelfTrade:            {http.StatusConflict, "SELF_TRADE"},
	domain.ErrInsufficientFunds:    {http.StatusConflict, "INSUFFICIENT_FUNDS"},
	domain.ErrBuyerRosterFull:      {http.StatusConflict, "BUYER_ROSTER_FULL"},
	domain.ErrSellerRosterTooSmall: {http.StatusConflict, "SELLER_ROSTER_TOO_SMALL"},
	domain.ErrInsufficientSupply:   {http.StatusConflict, "INSUFFICIENT_SUPPLY"},
	domain.ErrBudgetExceeded:       {http.StatusConflict, "BUDGET_EXCEEDED"},
}

// respondError translates domain errors to HTTP statuses. Anything outside
// the business taxonomy is reported as a transient failure the client may
// retry.
func respondError(c *gin.Context, err error) {
	for sentinel, m := range errorMappings {
		if errors.Is(err, sentinel) {
			c.JSON(m.status, errorResponse{Status: "error", Code: m.code, Message: sentinel.Error()})
			return
		}
	}
	c.JSON(http.StatusServiceUnavailable, errorResponse{
		Status:  "error",
		Code:    "TRANSIENT",
		Message: "temporary failure, please retry",
	})
}
