package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/pitchside/transfer-market-service/internal/delivery/ws"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all HTTP routes. Everything under /api except auth
// requires a Bearer token.
func NewRouter(
	jwtSecret []byte,
	authHandler *AuthHandler,
	teamHandler *TeamHandler,
	marketHandler *MarketHandler,
	hub *ws.Hub,
) *gin.Engine {
	router := gin.Default()

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.POST("/auth", authHandler.RegisterOrLogin)

	authorized := api.Group("")
	authorized.Use(AuthMiddleware(jwtSecret))
	{
		authorized.GET("/team", teamHandler.GetMyTeam)

		authorized.GET("/market/listings", marketHandler.SearchListings)
		authorized.POST("/market/listings", marketHandler.CreateListing)
		authorized.DELETE("/market/listings/:id", marketHandler.CancelListing)
		authorized.POST("/market/listings/:id/buy", marketHandler.BuyListing)

		authorized.GET("/ws", func(c *gin.Context) {
			hub.HandleWS(callerUserID(c), c.Writer, c.Request)
		})
	}

	return router
}
