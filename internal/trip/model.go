package trip

import (
	"net/http"
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "trip not found")
	ErrTitleRequired      = apperror.New(http.StatusBadRequest, "title is required")
	ErrInvalidTripType    = apperror.New(http.StatusBadRequest, "trip_type must be one of DAILY, RECURRING")
	ErrInvalidPricingType = apperror.New(http.StatusBadRequest, "pricing_type must be one of GLOBAL, PER_PERSON")
	ErrInvalidPrice       = apperror.New(http.StatusBadRequest, "price must not be negative")
	ErrInvalidPassengers  = apperror.New(http.StatusBadRequest, "nb_passengers must be positive")
	ErrDatesRequired      = apperror.New(http.StatusBadRequest, "at least one date range is required")
	ErrNoBoat             = apperror.New(http.StatusForbidden, "User must own a boat to create trips")
)

type Type string

const (
	TypeDaily     Type = "DAILY"
	TypeRecurring Type = "RECURRING"
)

func (t Type) Valid() bool {
	return t == TypeDaily || t == TypeRecurring
}

type PricingType string

const (
	PricingGlobal    PricingType = "GLOBAL"
	PricingPerPerson PricingType = "PER_PERSON"
)

func (p PricingType) Valid() bool {
	return p == PricingGlobal || p == PricingPerPerson
}

// Trip is a fishing outing published by an organizer on one of their boats.
type Trip struct {
	ID            string
	OrganizerID   string
	BoatID        string
	Title         string
	Description   string
	PracticalInfo string
	TripType      Type
	PricingType   PricingType
	Dates         []calendar.DateRange
	Schedules     []calendar.Schedule
	NbPassengers  int
	Price         float64
	CreatedAt     time.Time
}

// PriceFor returns the total price of seats on this trip.
func (t *Trip) PriceFor(seats int) float64 {
	if t.PricingType == PricingPerPerson {
		return t.Price * float64(seats)
	}
	return t.Price
}

// Filter defines parameters for listing trips. All criteria are ANDed.
//
// StartDate/EndDate keep trips with a date range overlapping the window.
// StartTime/EndTime keep trips with a schedule departing at or after StartTime
// and arriving at or before EndTime.
type Filter struct {
	OrganizerID   string
	BoatID        string
	Title         string
	TripType      Type
	PricingType   PricingType
	MinPrice      *float64
	MaxPrice      *float64
	MinPassengers *int
	StartDate     *calendar.Date
	EndDate       *calendar.Date
	StartTime     *calendar.TimeOfDay
	EndTime       *calendar.TimeOfDay

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
