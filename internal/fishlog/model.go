package fishlog

import (
	"net/http"
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "log not found")
	ErrFishNameRequired = apperror.New(http.StatusBadRequest, "fish_name is required")
	ErrInvalidSize      = apperror.New(http.StatusBadRequest, "size must be positive")
	ErrInvalidWeight    = apperror.New(http.StatusBadRequest, "weight must be positive")
	ErrCatchDateMissing = apperror.New(http.StatusBadRequest, "catch_date is required")
)

// Log is a fishing catch recorded by a user.
type Log struct {
	ID         string
	UserID     string
	FishName   string
	PictureURL *string
	Comment    string
	Size       *float64
	Weight     *float64
	Location   string
	CatchDate  calendar.Date
	Released   bool
	CreatedAt  time.Time
}

// Filter defines parameters for listing logs. All criteria are ANDed.
type Filter struct {
	UserID       string
	FishName     string
	Location     string
	MinSize      *float64
	MaxSize      *float64
	MinWeight    *float64
	MaxWeight    *float64
	Released     *bool
	MinCatchDate *calendar.Date
	MaxCatchDate *calendar.Date

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
