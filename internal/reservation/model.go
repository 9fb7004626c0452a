package reservation

import (
	"net/http"
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "reservation not found")
	ErrInvalidSeats = apperror.New(http.StatusBadRequest, "nb_seats must be positive")
)

// Reservation is a claim on seats of a trip for one date.
type Reservation struct {
	ID              string
	TripID          string
	UserID          string
	ReservationDate calendar.Date
	NbSeats         int
	TotalPrice      float64
	CreatedAt       time.Time
}

// Filter defines parameters for listing reservations. All criteria are ANDed.
type Filter struct {
	UserID        string
	TripID        string
	MinDate       *calendar.Date
	MaxDate       *calendar.Date
	MinSeats      *int
	MaxSeats      *int
	MinTotalPrice *float64
	MaxTotalPrice *float64

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
