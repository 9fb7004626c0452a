package http

import "github.com/gin-gonic/gin"

// RegisterRoutes serves stored uploads to authenticated users.
func RegisterRoutes(g gin.IRouter, h *Handler, authMiddleware gin.HandlerFunc) {
	fileGroup := g.Group("/files")
	fileGroup.Use(authMiddleware)
	{
		fileGroup.GET("/:id", h.ServeFile)
		fileGroup.GET("/:id/thumbnail", h.ServeThumbnail)
	}
}
