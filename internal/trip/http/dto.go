package http

import (
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/request"
	"github.com/fisherfans/fisherfans-backend/internal/trip"
)

// ListTripsRequest defines query parameters for listing trips.
type ListTripsRequest struct {
	request.ListParams
	OrganizerID   string   `form:"organizer_id" binding:"omitempty,uuid"`
	BoatID        string   `form:"boat_id" binding:"omitempty,uuid"`
	Title         string   `form:"title"`
	TripType      string   `form:"trip_type" binding:"omitempty,oneof=DAILY RECURRING"`
	PricingType   string   `form:"pricing_type" binding:"omitempty,oneof=GLOBAL PER_PERSON"`
	MinPrice      *float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice      *float64 `form:"max_price" binding:"omitempty,min=0"`
	MinPassengers *int     `form:"min_passengers" binding:"omitempty,min=0"`
	StartDate     string   `form:"start_date"`
	EndDate       string   `form:"end_date"`
	StartTime     string   `form:"start_time"`
	EndTime       string   `form:"end_time"`
	SortBy        string   `form:"sort_by" binding:"omitempty,oneof=title price nb_passengers created_at"`
}

// ToFilter converts the query into a trip.Filter, parsing dates and times.
func (r *ListTripsRequest) ToFilter() (trip.Filter, error) {
	filter := trip.Filter{
		OrganizerID:   r.OrganizerID,
		BoatID:        r.BoatID,
		Title:         r.Title,
		TripType:      trip.Type(r.TripType),
		PricingType:   trip.PricingType(r.PricingType),
		MinPrice:      r.MinPrice,
		MaxPrice:      r.MaxPrice,
		MinPassengers: r.MinPassengers,
		Page:          r.Page,
		PageSize:      r.PageSize,
		SortBy:        r.SortBy,
		SortOrder:     r.SortOrder,
	}

	var err error
	if filter.StartDate, err = request.OptionalDate(r.StartDate); err != nil {
		return filter, err
	}
	if filter.EndDate, err = request.OptionalDate(r.EndDate); err != nil {
		return filter, err
	}
	if filter.StartTime, err = request.OptionalTime(r.StartTime); err != nil {
		return filter, err
	}
	if filter.EndTime, err = request.OptionalTime(r.EndTime); err != nil {
		return filter, err
	}
	return filter, nil
}

// TripResponse is the shape of trip data returned in API responses.
type TripResponse struct {
	ID            string               `json:"id"`
	OrganizerID   string               `json:"organizer_id"`
	BoatID        string               `json:"boat_id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	PracticalInfo string               `json:"practical_info"`
	TripType      trip.Type            `json:"trip_type"`
	PricingType   trip.PricingType     `json:"pricing_type"`
	Dates         []calendar.DateRange `json:"dates"`
	Schedules     []calendar.Schedule  `json:"schedules"`
	NbPassengers  int                  `json:"nb_passengers"`
	Price         float64              `json:"price"`
	CreatedAt     time.Time            `json:"created_at"`
}

func NewTripResponse(t *trip.Trip) TripResponse {
	dates := t.Dates
	if dates == nil {
		dates = []calendar.DateRange{}
	}
	schedules := t.Schedules
	if schedules == nil {
		schedules = []calendar.Schedule{}
	}
	return TripResponse{
		ID:            t.ID,
		OrganizerID:   t.OrganizerID,
		BoatID:        t.BoatID,
		Title:         t.Title,
		Description:   t.Description,
		PracticalInfo: t.PracticalInfo,
		TripType:      t.TripType,
		PricingType:   t.PricingType,
		Dates:         dates,
		Schedules:     schedules,
		NbPassengers:  t.NbPassengers,
		Price:         t.Price,
		CreatedAt:     t.CreatedAt,
	}
}

// CreateTripRequest defines the payload for publishing a trip.
type CreateTripRequest struct {
	BoatID        string               `json:"boat_id" binding:"required,uuid"`
	Title         string               `json:"title" binding:"required,max=100"`
	Description   string               `json:"description"`
	PracticalInfo string               `json:"practical_info"`
	TripType      string               `json:"trip_type" binding:"required"`
	PricingType   string               `json:"pricing_type" binding:"required"`
	Dates         []calendar.DateRange `json:"dates" binding:"required"`
	Schedules     []calendar.Schedule  `json:"schedules"`
	NbPassengers  int                  `json:"nb_passengers" binding:"required"`
	Price         float64              `json:"price"`
}

func (r *CreateTripRequest) ToService() trip.CreateRequest {
	return trip.CreateRequest{
		BoatID:        r.BoatID,
		Title:         r.Title,
		Description:   r.Description,
		PracticalInfo: r.PracticalInfo,
		TripType:      trip.Type(r.TripType),
		PricingType:   trip.PricingType(r.PricingType),
		Dates:         r.Dates,
		Schedules:     r.Schedules,
		NbPassengers:  r.NbPassengers,
		Price:         r.Price,
	}
}

// UpdateTripRequest defines fields allowed to be updated via PATCH /trips/:id.
type UpdateTripRequest struct {
	BoatID        *string               `json:"boat_id" binding:"omitempty,uuid"`
	Title         *string               `json:"title" binding:"omitempty,min=1,max=100"`
	Description   *string               `json:"description"`
	PracticalInfo *string               `json:"practical_info"`
	TripType      *string               `json:"trip_type"`
	PricingType   *string               `json:"pricing_type"`
	Dates         *[]calendar.DateRange `json:"dates"`
	Schedules     *[]calendar.Schedule  `json:"schedules"`
	NbPassengers  *int                  `json:"nb_passengers"`
	Price         *float64              `json:"price"`
}

func (r *UpdateTripRequest) ToService() trip.UpdateRequest {
	req := trip.UpdateRequest{
		BoatID:        r.BoatID,
		Title:         r.Title,
		Description:   r.Description,
		PracticalInfo: r.PracticalInfo,
		Dates:         r.Dates,
		Schedules:     r.Schedules,
		NbPassengers:  r.NbPassengers,
		Price:         r.Price,
	}
	if r.TripType != nil {
		t := trip.Type(*r.TripType)
		req.TripType = &t
	}
	if r.PricingType != nil {
		p := trip.PricingType(*r.PricingType)
		req.PricingType = &p
	}
	return req
}
