package fishlog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
)

// CreateRequest carries data to record a catch.
type CreateRequest struct {
	FishName  string
	Comment   string
	Size      *float64
	Weight    *float64
	Location  string
	CatchDate calendar.Date
	Released  bool
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	FishName  *string
	Comment   *string
	Size      *float64
	Weight    *float64
	Location  *string
	CatchDate *calendar.Date
	Released  *bool
}

// FileRemover deletes uploads a log no longer points at.
type FileRemover interface {
	DeleteByURL(ctx context.Context, url string) error
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Log, error)
	GetByID(ctx context.Context, actor auth.Actor, id string) (*Log, error)
	List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Log, int, error)
	Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Log, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
	// AuthorizePicture checks that actor may change the picture of log id.
	AuthorizePicture(ctx context.Context, actor auth.Actor, id string) error
	SetPicture(ctx context.Context, actor auth.Actor, id string, url string) error
}

type service struct {
	repo   Repository
	files  FileRemover
	policy *auth.Policy
}

func NewService(repo Repository, files FileRemover, policy *auth.Policy) Service {
	return &service{repo: repo, files: files, policy: policy}
}

func validateLog(l *Log) error {
	if l.FishName == "" {
		return ErrFishNameRequired
	}
	if l.Size != nil && *l.Size <= 0 {
		return ErrInvalidSize
	}
	if l.Weight != nil && *l.Weight <= 0 {
		return ErrInvalidWeight
	}
	if l.CatchDate.IsZero() {
		return ErrCatchDateMissing
	}
	return nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Log, error) {
	if actor.UserID == "" {
		return nil, auth.ErrUnauthenticated
	}

	l := &Log{
		UserID:    actor.UserID,
		FishName:  strings.TrimSpace(req.FishName),
		Comment:   req.Comment,
		Size:      req.Size,
		Weight:    req.Weight,
		Location:  req.Location,
		CatchDate: req.CatchDate,
		Released:  req.Released,
	}
	if err := validateLog(l); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) GetByID(ctx context.Context, actor auth.Actor, id string) (*Log, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, auth.ActionRead, l.UserID); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Log, int, error) {
	filter.UserID = s.policy.ScopeOwner(actor, filter.UserID)
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Log, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, auth.ActionUpdate, l.UserID); err != nil {
		return nil, err
	}

	apply(l, req)
	if err := validateLog(l); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(actor, auth.ActionDelete, l.UserID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if l.PictureURL != nil {
		s.removePicture(ctx, *l.PictureURL)
	}
	return nil
}

func (s *service) AuthorizePicture(ctx context.Context, actor auth.Actor, id string) error {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.policy.Authorize(actor, auth.ActionUpdate, l.UserID)
}

func (s *service) SetPicture(ctx context.Context, actor auth.Actor, id string, url string) error {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(actor, auth.ActionUpdate, l.UserID); err != nil {
		return err
	}
	if err := s.repo.SetPictureURL(ctx, id, url); err != nil {
		return err
	}
	if l.PictureURL != nil && *l.PictureURL != url {
		s.removePicture(ctx, *l.PictureURL)
	}
	return nil
}

func (s *service) removePicture(ctx context.Context, url string) {
	if err := s.files.DeleteByURL(ctx, url); err != nil {
		slog.WarnContext(ctx, "failed to remove log picture", "url", url, "error", err)
	}
}

func apply(l *Log, req UpdateRequest) {
	if req.FishName != nil {
		l.FishName = strings.TrimSpace(*req.FishName)
	}
	if req.Comment != nil {
		l.Comment = *req.Comment
	}
	if req.Size != nil {
		l.Size = req.Size
	}
	if req.Weight != nil {
		l.Weight = req.Weight
	}
	if req.Location != nil {
		l.Location = *req.Location
	}
	if req.CatchDate != nil {
		l.CatchDate = *req.CatchDate
	}
	if req.Released != nil {
		l.Released = *req.Released
	}
}
