package file

import (
	"net/http"
	"strings"
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "file not found")
	ErrThumbnailMissing  = apperror.New(http.StatusNotFound, "thumbnail not available for this file")
	ErrFileTooLarge      = apperror.New(http.StatusRequestEntityTooLarge, "file is too large")
	ErrUnsupportedType   = apperror.New(http.StatusBadRequest, "unsupported file type")
	ErrInvalidImage      = apperror.New(http.StatusBadRequest, "file is not a valid image")
	ErrFileFieldRequired = apperror.New(http.StatusBadRequest, "file is required")
)

const (
	thumbnailSize = 200
	resizedSize   = 1000
)

// File is the metadata of an uploaded picture.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// IDFromURL returns the file id behind a URL built by FileURL.
func IDFromURL(url string) (string, bool) {
	id, ok := strings.CutPrefix(url, "/v1/files/")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
