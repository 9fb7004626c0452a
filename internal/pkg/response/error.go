package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string        `json:"error"`
	Code  apperror.Kind `json:"code"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code.
// If it's not an AppError, it is logged and answered with 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message, Code: appErr.Kind})
		return
	}

	slog.ErrorContext(c.Request.Context(), "internal error",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: apperror.KindInternal})
}

// BadRequest answers 400 for payloads rejected before reaching a service.
func BadRequest(c *gin.Context, message string, details error) {
	body := gin.H{"error": message, "code": apperror.KindValidation}
	if details != nil {
		body["details"] = details.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
