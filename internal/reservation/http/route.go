package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers reservation routes, including the organizer view
// of a trip's reservations. Every route requires authentication.
func RegisterRoutes(g *gin.RouterGroup, h *ReservationHandler, authMiddleware gin.HandlerFunc) {
	resGroup := g.Group("/reservations")
	resGroup.Use(authMiddleware)
	{
		resGroup.POST("", h.Create)
		resGroup.GET("", h.List)
		resGroup.GET("/filter", h.List)
		resGroup.GET("/:id", h.Get)
		resGroup.PATCH("/:id", h.Update)
		resGroup.DELETE("/:id", h.Delete)
	}

	g.GET("/trips/:id/reservations", authMiddleware, h.ListForTrip)
}
