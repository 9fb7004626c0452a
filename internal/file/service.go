package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/storage"
)

// UploadInput describes one multipart upload and the rules it must satisfy.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	UserID       string
	MaxSizeBytes int64    // 0 = no limit
	AllowedTypes []string // empty = allow all
	ResizeImage  bool     // re-encode as JPEG bounded by 1000x1000
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*File, error)
	Delete(ctx context.Context, id string) error
	// DeleteByURL removes the upload a FileURL points at.
	// URLs that name no upload are ignored.
	DeleteByURL(ctx context.Context, url string) error
	// DeleteOwnedBy removes every upload of a user, records and objects.
	DeleteOwnedBy(ctx context.Context, userID string) error
	Get(ctx context.Context, id string) (*File, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	now     func() time.Time
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		now:     time.Now,
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	if in.FileHeader == nil {
		return nil, ErrFileFieldRequired
	}
	if in.MaxSizeBytes > 0 && in.FileHeader.Size > in.MaxSizeBytes {
		return nil, ErrFileTooLarge
	}

	src, err := in.FileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	var reader io.Reader = src
	if in.MaxSizeBytes > 0 {
		reader = io.LimitReader(src, in.MaxSizeBytes+1)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if in.MaxSizeBytes > 0 && int64(len(content)) > in.MaxSizeBytes {
		return nil, ErrFileTooLarge
	}

	// Sniff rather than trust the client header.
	contentType := http.DetectContentType(content)
	if len(in.AllowedTypes) > 0 && !slices.Contains(in.AllowedTypes, contentType) {
		return nil, ErrUnsupportedType
	}

	fileID := uuid.NewString()
	shard := fileID[:2]
	ext := strings.ToLower(filepath.Ext(in.FileHeader.Filename))

	if in.ResizeImage {
		img, err := s.imgProc.Decode(bytes.NewReader(content))
		if err != nil {
			return nil, ErrInvalidImage
		}
		resized, err := s.imgProc.FitJPEG(img, resizedSize, resizedSize)
		if err != nil {
			return nil, err
		}
		content = resized.Bytes()
		contentType = "image/jpeg"
		ext = ".jpg"
	}

	storagePath := fmt.Sprintf("upload/%s/%s%s", shard, fileID, ext)
	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	var thumbnailPath *string
	if strings.HasPrefix(contentType, "image/") {
		thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(content), thumbnailSize, thumbnailSize)
		if err == nil {
			p := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
			if err = s.storage.Save(ctx, p, thumb); err == nil {
				thumbnailPath = &p
			}
		}
		if err != nil {
			slog.WarnContext(ctx, "thumbnail generation failed", "file_id", fileID, "error", err)
		}
	}

	f := &File{
		ID:            fileID,
		UserID:        in.UserID,
		Filename:      filepath.Base(in.FileHeader.Filename),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(content)),
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.removeObjects(ctx, f)
		return nil, err
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeObjects(ctx, f)
	return nil
}

func (s *service) DeleteByURL(ctx context.Context, url string) error {
	id, ok := IDFromURL(url)
	if !ok {
		return nil
	}
	if err := s.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (s *service) DeleteOwnedBy(ctx context.Context, userID string) error {
	files, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := s.repo.Delete(ctx, f.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		s.removeObjects(ctx, f)
	}
	return nil
}

func (s *service) removeObjects(ctx context.Context, f *File) {
	if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
		slog.WarnContext(ctx, "failed to remove stored file", "file_id", f.ID, "error", err)
	}
	if f.ThumbnailPath != nil {
		if err := s.storage.Delete(ctx, *f.ThumbnailPath); err != nil {
			slog.WarnContext(ctx, "failed to remove stored thumbnail", "file_id", f.ID, "error", err)
		}
	}
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return s.open(ctx, f, f.StoragePath)
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if f.ThumbnailPath == nil {
		return nil, nil, ErrThumbnailMissing
	}
	return s.open(ctx, f, *f.ThumbnailPath)
}

func (s *service) open(ctx context.Context, f *File, path string) (io.ReadCloser, *File, error) {
	stream, err := s.storage.Get(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to retrieve file from storage: %w", err)
	}
	return stream, f, nil
}
