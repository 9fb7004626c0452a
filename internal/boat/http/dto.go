package http

import (
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/boat"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/request"
)

// ListBoatsRequest defines query parameters for listing boats.
type ListBoatsRequest struct {
	request.ListParams
	OwnerID            string   `form:"owner_id" binding:"omitempty,uuid"`
	Name               string   `form:"name"`
	Brand              string   `form:"brand"`
	Port               string   `form:"port"`
	BoatType           string   `form:"boat_type" binding:"omitempty,oneof=OPEN CABIN CATAMARAN VOILER JETSKI CANOE"`
	Motor              string   `form:"motor" binding:"omitempty,oneof=DIESEL GASOLINE NOTHING"`
	License            string   `form:"license" binding:"omitempty,oneof=COASTAL INLAND"`
	MinPassenger       *int     `form:"min_passenger" binding:"omitempty,min=0"`
	MaxPassenger       *int     `form:"max_passenger" binding:"omitempty,min=0"`
	MinFabricationYear *int     `form:"min_fabrication_year"`
	MaxFabricationYear *int     `form:"max_fabrication_year"`
	MinCaution         *float64 `form:"min_caution" binding:"omitempty,min=0"`
	MaxCaution         *float64 `form:"max_caution" binding:"omitempty,min=0"`
	SortBy             string   `form:"sort_by" binding:"omitempty,oneof=name nb_passenger fabrication_year caution created_at"`
}

func (r *ListBoatsRequest) ToFilter() boat.Filter {
	return boat.Filter{
		OwnerID:            r.OwnerID,
		Name:               r.Name,
		Brand:              r.Brand,
		Port:               r.Port,
		BoatType:           boat.Type(r.BoatType),
		Motor:              boat.Motor(r.Motor),
		License:            boat.License(r.License),
		MinPassenger:       r.MinPassenger,
		MaxPassenger:       r.MaxPassenger,
		MinFabricationYear: r.MinFabricationYear,
		MaxFabricationYear: r.MaxFabricationYear,
		MinCaution:         r.MinCaution,
		MaxCaution:         r.MaxCaution,
		Page:               r.Page,
		PageSize:           r.PageSize,
		SortBy:             r.SortBy,
		SortOrder:          r.SortOrder,
	}
}

// BoatResponse is the shape of boat data returned in API responses.
type BoatResponse struct {
	ID              string           `json:"id"`
	OwnerID         string           `json:"owner_id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Brand           string           `json:"brand"`
	FabricationYear *int             `json:"fabrication_year"`
	PhotoURL        *string          `json:"photo_url"`
	NbPassenger     int              `json:"nb_passenger"`
	NbSeat          int              `json:"nb_seat"`
	Port            string           `json:"port"`
	Latitude        *float64         `json:"latitude"`
	Longitude       *float64         `json:"longitude"`
	MotorPower      *int             `json:"motor_power"`
	Motor           boat.Motor       `json:"motor"`
	License         boat.License     `json:"license"`
	BoatType        boat.Type        `json:"boat_type"`
	Equipment       []boat.Equipment `json:"equipment"`
	Caution         float64          `json:"caution"`
	CreatedAt       time.Time        `json:"created_at"`
}

func NewBoatResponse(b *boat.Boat) BoatResponse {
	equipment := b.Equipment
	if equipment == nil {
		equipment = []boat.Equipment{}
	}
	return BoatResponse{
		ID:              b.ID,
		OwnerID:         b.OwnerID,
		Name:            b.Name,
		Description:     b.Description,
		Brand:           b.Brand,
		FabricationYear: b.FabricationYear,
		PhotoURL:        b.PhotoURL,
		NbPassenger:     b.NbPassenger,
		NbSeat:          b.NbSeat,
		Port:            b.Port,
		Latitude:        b.Latitude,
		Longitude:       b.Longitude,
		MotorPower:      b.MotorPower,
		Motor:           b.Motor,
		License:         b.License,
		BoatType:        b.BoatType,
		Equipment:       equipment,
		Caution:         b.Caution,
		CreatedAt:       b.CreatedAt,
	}
}

// CreateBoatRequest defines the payload for registering a boat.
// Enumerated fields are validated by the service so the message names the allowed values.
type CreateBoatRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Brand           string   `json:"brand"`
	FabricationYear *int     `json:"fabrication_year"`
	NbPassenger     int      `json:"nb_passenger" binding:"required"`
	NbSeat          int      `json:"nb_seat"`
	Port            string   `json:"port"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	MotorPower      *int     `json:"motor_power"`
	Motor           string   `json:"motor" binding:"required"`
	License         string   `json:"license" binding:"required"`
	BoatType        string   `json:"boat_type" binding:"required"`
	Equipment       []string `json:"equipment"`
	Caution         float64  `json:"caution"`
}

func (r *CreateBoatRequest) ToService() boat.CreateRequest {
	return boat.CreateRequest{
		Name:            r.Name,
		Description:     r.Description,
		Brand:           r.Brand,
		FabricationYear: r.FabricationYear,
		NbPassenger:     r.NbPassenger,
		NbSeat:          r.NbSeat,
		Port:            r.Port,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		MotorPower:      r.MotorPower,
		Motor:           boat.Motor(r.Motor),
		License:         boat.License(r.License),
		BoatType:        boat.Type(r.BoatType),
		Equipment:       equipmentTags(r.Equipment),
		Caution:         r.Caution,
	}
}

// UpdateBoatRequest defines fields allowed to be updated via PATCH /boats/:id.
type UpdateBoatRequest struct {
	Name            *string   `json:"name" binding:"omitempty,min=1"`
	Description     *string   `json:"description"`
	Brand           *string   `json:"brand"`
	FabricationYear *int      `json:"fabrication_year"`
	NbPassenger     *int      `json:"nb_passenger"`
	NbSeat          *int      `json:"nb_seat"`
	Port            *string   `json:"port"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	MotorPower      *int      `json:"motor_power"`
	Motor           *string   `json:"motor"`
	License         *string   `json:"license"`
	BoatType        *string   `json:"boat_type"`
	Equipment       *[]string `json:"equipment"`
	Caution         *float64  `json:"caution"`
}

func (r *UpdateBoatRequest) ToService() boat.UpdateRequest {
	req := boat.UpdateRequest{
		Name:            r.Name,
		Description:     r.Description,
		Brand:           r.Brand,
		FabricationYear: r.FabricationYear,
		NbPassenger:     r.NbPassenger,
		NbSeat:          r.NbSeat,
		Port:            r.Port,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		MotorPower:      r.MotorPower,
		Caution:         r.Caution,
	}
	if r.Motor != nil {
		m := boat.Motor(*r.Motor)
		req.Motor = &m
	}
	if r.License != nil {
		l := boat.License(*r.License)
		req.License = &l
	}
	if r.BoatType != nil {
		t := boat.Type(*r.BoatType)
		req.BoatType = &t
	}
	if r.Equipment != nil {
		tags := equipmentTags(*r.Equipment)
		req.Equipment = &tags
	}
	return req
}

func equipmentTags(values []string) []boat.Equipment {
	tags := make([]boat.Equipment, len(values))
	for i, v := range values {
		tags[i] = boat.Equipment(v)
	}
	return tags
}
