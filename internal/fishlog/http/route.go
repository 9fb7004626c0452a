package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *LogHandler, authMiddleware gin.HandlerFunc) {
	logGroup := g.Group("/logs")
	logGroup.Use(authMiddleware)
	{
		logGroup.POST("", h.Create)
		logGroup.GET("", h.List)
		logGroup.GET("/filter", h.List)
		logGroup.GET("/:id", h.Get)
		logGroup.PATCH("/:id", h.Update)
		logGroup.DELETE("/:id", h.Delete)
		logGroup.POST("/:id/picture", h.UploadPicture)
	}
}
