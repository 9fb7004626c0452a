package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers trip routes. Every route requires authentication.
func RegisterRoutes(g *gin.RouterGroup, h *TripHandler, authMiddleware gin.HandlerFunc) {
	tripGroup := g.Group("/trips")
	tripGroup.Use(authMiddleware)
	{
		tripGroup.POST("", h.Create)
		tripGroup.GET("", h.List)
		tripGroup.GET("/filter", h.List)
		tripGroup.GET("/:id", h.Get)
		tripGroup.PATCH("/:id", h.Update)
		tripGroup.DELETE("/:id", h.Delete)
	}
}
