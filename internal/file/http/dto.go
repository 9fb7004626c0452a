package http

// FileUploadResponse describes a stored upload.
type FileUploadResponse struct {
	FileID       string  `json:"file_id"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	ContentType  string  `json:"content_type"`
	Size         int64   `json:"size"`
}
