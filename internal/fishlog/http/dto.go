package http

import (
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/fishlog"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/request"
)

// ListLogsRequest defines query parameters for listing catch logs.
type ListLogsRequest struct {
	request.ListParams
	UserID       string   `form:"user_id" binding:"omitempty,uuid"`
	FishName     string   `form:"fish_name"`
	Location     string   `form:"location"`
	MinSize      *float64 `form:"min_size" binding:"omitempty,min=0"`
	MaxSize      *float64 `form:"max_size" binding:"omitempty,min=0"`
	MinWeight    *float64 `form:"min_weight" binding:"omitempty,min=0"`
	MaxWeight    *float64 `form:"max_weight" binding:"omitempty,min=0"`
	Released     *bool    `form:"released"`
	MinCatchDate string   `form:"min_catch_date"`
	MaxCatchDate string   `form:"max_catch_date"`
	SortBy       string   `form:"sort_by" binding:"omitempty,oneof=fish_name size weight catch_date created_at"`
}

func (r *ListLogsRequest) ToFilter() (fishlog.Filter, error) {
	filter := fishlog.Filter{
		UserID:    r.UserID,
		FishName:  r.FishName,
		Location:  r.Location,
		MinSize:   r.MinSize,
		MaxSize:   r.MaxSize,
		MinWeight: r.MinWeight,
		MaxWeight: r.MaxWeight,
		Released:  r.Released,
		Page:      r.Page,
		PageSize:  r.PageSize,
		SortBy:    r.SortBy,
		SortOrder: r.SortOrder,
	}

	var err error
	if filter.MinCatchDate, err = request.OptionalDate(r.MinCatchDate); err != nil {
		return filter, err
	}
	if filter.MaxCatchDate, err = request.OptionalDate(r.MaxCatchDate); err != nil {
		return filter, err
	}
	return filter, nil
}

// LogResponse is the shape of catch log data returned in API responses.
type LogResponse struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	FishName   string        `json:"fish_name"`
	PictureURL *string       `json:"picture_url"`
	Comment    string        `json:"comment"`
	Size       *float64      `json:"size"`
	Weight     *float64      `json:"weight"`
	Location   string        `json:"location"`
	CatchDate  calendar.Date `json:"catch_date"`
	Released   bool          `json:"released"`
	CreatedAt  time.Time     `json:"created_at"`
}

func NewLogResponse(l *fishlog.Log) LogResponse {
	return LogResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		FishName:   l.FishName,
		PictureURL: l.PictureURL,
		Comment:    l.Comment,
		Size:       l.Size,
		Weight:     l.Weight,
		Location:   l.Location,
		CatchDate:  l.CatchDate,
		Released:   l.Released,
		CreatedAt:  l.CreatedAt,
	}
}

// CreateLogRequest defines the payload for recording a catch.
// The picture is attached afterwards through the upload endpoint.
type CreateLogRequest struct {
	FishName  string         `json:"fish_name" binding:"required,max=100"`
	Comment   string         `json:"comment"`
	Size      *float64       `json:"size" binding:"omitempty,gt=0"`
	Weight    *float64       `json:"weight" binding:"omitempty,gt=0"`
	Location  string         `json:"location"`
	CatchDate *calendar.Date `json:"catch_date" binding:"required"`
	Released  bool           `json:"released"`
}

func (r *CreateLogRequest) ToService() fishlog.CreateRequest {
	return fishlog.CreateRequest{
		FishName:  r.FishName,
		Comment:   r.Comment,
		Size:      r.Size,
		Weight:    r.Weight,
		Location:  r.Location,
		CatchDate: *r.CatchDate,
		Released:  r.Released,
	}
}

// UpdateLogRequest defines fields allowed to be updated via PATCH /logs/:id.
type UpdateLogRequest struct {
	FishName  *string        `json:"fish_name" binding:"omitempty,max=100"`
	Comment   *string        `json:"comment"`
	Size      *float64       `json:"size" binding:"omitempty,gt=0"`
	Weight    *float64       `json:"weight" binding:"omitempty,gt=0"`
	Location  *string        `json:"location"`
	CatchDate *calendar.Date `json:"catch_date"`
	Released  *bool          `json:"released"`
}

func (r *UpdateLogRequest) ToService() fishlog.UpdateRequest {
	return fishlog.UpdateRequest{
		FishName:  r.FishName,
		Comment:   r.Comment,
		Size:      r.Size,
		Weight:    r.Weight,
		Location:  r.Location,
		CatchDate: r.CatchDate,
		Released:  r.Released,
	}
}
