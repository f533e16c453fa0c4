package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitchside/transfer-market-service/internal/usecase"
	authdto "github.com/pitchside/transfer-market-service/internal/usecase/dto/auth"
)

type AuthHandler struct {
	authUC usecase.AuthUsecase
}

func NewAuthHandler(authUC usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

type registerOrLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Username string `json:"username"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// RegisterOrLogin is a single endpoint: known emails log in, unknown emails
// register and get a squad drafted in the background.
func (h *AuthHandler) RegisterOrLogin(c *gin.Context) {
	var req registerOrLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Status:  "error",
			Code:    "BAD_REQUEST",
			Message: err.Error(),
		})
		return
	}

	token, err := h.authUC.RegisterOrLogin(c.Request.Context(), authdto.RegisterOrLoginInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		LastName: req.LastName,
		Username: req.Username,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}
