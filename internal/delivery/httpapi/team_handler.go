package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitchside/transfer-market-service/internal/usecase"
)

type TeamHandler struct {
	teamUC usecase.TeamUsecase
}

func NewTeamHandler(teamUC usecase.TeamUsecase) *TeamHandler {
	return &TeamHandler{teamUC: teamUC}
}

// GetMyTeam returns the caller's team with its roster. 404 while the draft
// is still pending.
func (h *TeamHandler) GetMyTeam(c *gin.Context) {
	out, err := h.teamUC.GetTeamWithPlayers(c.Request.Context(), callerUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
