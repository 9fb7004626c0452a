package request

import (
	"net/http"
	"strings"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
)

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Validate performs custom validation for ByIDRequest.
func (r *ByIDRequest) Validate() error {
	return nil
}

// ListParams holds pagination and ordering query parameters shared by list endpoints.
type ListParams struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Normalize fills defaults for missing pagination values.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	p.SortOrder = strings.ToUpper(p.SortOrder)
	if p.SortOrder == "" {
		p.SortOrder = "DESC"
	}
}

var ErrInvalidDate = apperror.New(http.StatusBadRequest, "dates must use the YYYY-MM-DD format")

// OptionalDate parses a query value into a calendar date; empty input yields nil.
func OptionalDate(v string) (*calendar.Date, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(v)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusBadRequest, ErrInvalidDate.Message)
	}
	return &d, nil
}

var ErrInvalidTime = apperror.New(http.StatusBadRequest, "times must use the HH:MM:SS format")

// OptionalTime parses a query value into a time of day; empty input yields nil.
func OptionalTime(v string) (*calendar.TimeOfDay, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	t, err := calendar.ParseTimeOfDay(v)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusBadRequest, ErrInvalidTime.Message)
	}
	return &t, nil
}
