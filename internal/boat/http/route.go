package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers boat routes. Every route requires authentication.
func RegisterRoutes(g *gin.RouterGroup, h *BoatHandler, authMiddleware gin.HandlerFunc) {
	boatGroup := g.Group("/boats")
	boatGroup.Use(authMiddleware)
	{
		boatGroup.POST("", h.Create)
		boatGroup.GET("", h.List)
		boatGroup.GET("/filter", h.List)
		boatGroup.GET("/:id", h.Get)
		boatGroup.PATCH("/:id", h.Update)
		boatGroup.DELETE("/:id", h.Delete)
		boatGroup.POST("/:id/photo", h.UploadPhoto)
	}
}
