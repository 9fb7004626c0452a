package http

import (
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/request"
	"github.com/fisherfans/fisherfans-backend/internal/reservation"
)

// ListReservationsRequest defines query parameters for listing reservations.
type ListReservationsRequest struct {
	request.ListParams
	UserID        string   `form:"user_id" binding:"omitempty,uuid"`
	TripID        string   `form:"trip_id" binding:"omitempty,uuid"`
	MinDate       string   `form:"min_date"`
	MaxDate       string   `form:"max_date"`
	MinSeats      *int     `form:"min_seats" binding:"omitempty,min=0"`
	MaxSeats      *int     `form:"max_seats" binding:"omitempty,min=0"`
	MinTotalPrice *float64 `form:"min_total_price" binding:"omitempty,min=0"`
	MaxTotalPrice *float64 `form:"max_total_price" binding:"omitempty,min=0"`
	SortBy        string   `form:"sort_by" binding:"omitempty,oneof=reservation_date nb_seats total_price created_at"`
}

// ToFilter converts the query into a reservation.Filter, parsing dates.
func (r *ListReservationsRequest) ToFilter() (reservation.Filter, error) {
	filter := reservation.Filter{
		UserID:        r.UserID,
		TripID:        r.TripID,
		MinSeats:      r.MinSeats,
		MaxSeats:      r.MaxSeats,
		MinTotalPrice: r.MinTotalPrice,
		MaxTotalPrice: r.MaxTotalPrice,
		Page:          r.Page,
		PageSize:      r.PageSize,
		SortBy:        r.SortBy,
		SortOrder:     r.SortOrder,
	}

	var err error
	if filter.MinDate, err = request.OptionalDate(r.MinDate); err != nil {
		return filter, err
	}
	if filter.MaxDate, err = request.OptionalDate(r.MaxDate); err != nil {
		return filter, err
	}
	return filter, nil
}

// ReservationResponse is the shape of reservation data returned in API responses.
type ReservationResponse struct {
	ID              string        `json:"id"`
	TripID          string        `json:"trip_id"`
	UserID          string        `json:"user_id"`
	ReservationDate calendar.Date `json:"reservation_date"`
	NbSeats         int           `json:"nb_seats"`
	TotalPrice      float64       `json:"total_price"`
	CreatedAt       time.Time     `json:"created_at"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID,
		TripID:          r.TripID,
		UserID:          r.UserID,
		ReservationDate: r.ReservationDate,
		NbSeats:         r.NbSeats,
		TotalPrice:      r.TotalPrice,
		CreatedAt:       r.CreatedAt,
	}
}

// CreateReservationRequest defines the payload for reserving seats.
// total_price is computed from the trip and is not accepted.
type CreateReservationRequest struct {
	TripID          string         `json:"trip_id" binding:"required,uuid"`
	ReservationDate *calendar.Date `json:"reservation_date" binding:"required"`
	NbSeats         int            `json:"nb_seats" binding:"required"`
}

func (r *CreateReservationRequest) ToService() reservation.CreateRequest {
	return reservation.CreateRequest{
		TripID:          r.TripID,
		ReservationDate: *r.ReservationDate,
		NbSeats:         r.NbSeats,
	}
}

// UpdateReservationRequest defines fields allowed to be updated via PATCH /reservations/:id.
type UpdateReservationRequest struct {
	ReservationDate *calendar.Date `json:"reservation_date"`
	NbSeats         *int           `json:"nb_seats"`
}

func (r *UpdateReservationRequest) ToService() reservation.UpdateRequest {
	return reservation.UpdateRequest{
		ReservationDate: r.ReservationDate,
		NbSeats:         r.NbSeats,
	}
}
