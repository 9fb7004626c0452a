package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/file"
	filehttp "github.com/fisherfans/fisherfans-backend/internal/file/http"
	"github.com/fisherfans/fisherfans-backend/internal/fishlog"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/request"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/response"
)

type LogHandler struct {
	service        fishlog.Service
	fileHandler    *filehttp.Handler
	maxUploadBytes int64
}

func NewHandler(service fishlog.Service, fileHandler *filehttp.Handler, maxUploadBytes int64) *LogHandler {
	return &LogHandler{
		service:        service,
		fileHandler:    fileHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *LogHandler) Create(c *gin.Context) {
	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	l, err := h.service.Create(c.Request.Context(), auth.GetActor(c), req.ToService())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewLogResponse(l))
}

func (h *LogHandler) List(c *gin.Context) {
	var req ListLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	filter, err := req.ToFilter()
	if err != nil {
		response.Error(c, err)
		return
	}

	logs, total, err := h.service.List(c.Request.Context(), auth.GetActor(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.MapPage(logs, NewLogResponse, req.Page, req.PageSize, total))
}

func (h *LogHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), auth.GetActor(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLogResponse(l))
}

func (h *LogHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid body", err)
		return
	}

	l, err := h.service.Update(c.Request.Context(), auth.GetActor(c), uri.ID, body.ToService())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLogResponse(l))
}

func (h *LogHandler) Delete(c *gin.Context) {
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

// UploadPicture stores an image and attaches it to the catch.
func (h *LogHandler) UploadPicture(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	actor := auth.GetActor(c)
	if err := h.service.AuthorizePicture(c.Request.Context(), actor, uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.fileHandler.HandleFileUpload(c, filehttp.FileUploadConfig{
		MaxSizeBytes: h.maxUploadBytes,
		AllowedTypes: filehttp.ImageTypes,
		ResizeImage:  true,
		AfterUpload: func(ctx context.Context, fileID string) error {
			return h.service.SetPicture(ctx, actor, uri.ID, file.FileURL(fileID))
		},
	})
}
