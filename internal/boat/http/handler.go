package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/boat"
	"github.com/fisherfans/fisherfans-backend/internal/file"
	filehttp "github.com/fisherfans/fisherfans-backend/internal/file/http"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/request"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/response"
)

type BoatHandler struct {
	service        boat.Service
	fileHandler    *filehttp.Handler
	maxUploadBytes int64
}

func NewHandler(service boat.Service, fileHandler *filehttp.Handler, maxUploadBytes int64) *BoatHandler {
	return &BoatHandler{
		service:        service,
		fileHandler:    fileHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create registers a boat owned by the current user.
func (h *BoatHandler) Create(c *gin.Context) {
	var req CreateBoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), auth.GetActor(c), req.ToService())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBoatResponse(b))
}

// List retrieves boats matching the query filters.
func (h *BoatHandler) List(c *gin.Context) {
	var req ListBoatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	boats, total, err := h.service.List(c.Request.Context(), auth.GetActor(c), req.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.MapPage(boats, NewBoatResponse, req.Page, req.PageSize, total))
}

func (h *BoatHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), auth.GetActor(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBoatResponse(b))
}

func (h *BoatHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateBoatRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid body", err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), auth.GetActor(c), uri.ID, body.ToService())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBoatResponse(b))
}

func (h *BoatHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.GetActor(c), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadPhoto stores an image and sets it as the boat photo.
func (h *BoatHandler) UploadPhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	actor := auth.GetActor(c)

	// Permission check before accepting the upload
	if err := h.service.AuthorizePhoto(c.Request.Context(), actor, uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.fileHandler.HandleFileUpload(c, filehttp.FileUploadConfig{
		MaxSizeBytes: h.maxUploadBytes,
		AllowedTypes: filehttp.ImageTypes,
		ResizeImage:  true,
		AfterUpload: func(ctx context.Context, fileID string) error {
			return h.service.SetPhoto(ctx, actor, uri.ID, file.FileURL(fileID))
		},
	})
}
