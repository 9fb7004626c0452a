package boat

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
)

// CreateRequest carries data to register a boat.
type CreateRequest struct {
	Name            string
	Description     string
	Brand           string
	FabricationYear *int
	NbPassenger     int
	NbSeat          int
	Port            string
	Latitude        *float64
	Longitude       *float64
	MotorPower      *int
	Motor           Motor
	License         License
	BoatType        Type
	Equipment       []Equipment
	Caution         float64
}

// UpdateRequest carries data for partial updates.
// Equipment replaces the whole set when non-nil.
type UpdateRequest struct {
	Name            *string
	Description     *string
	Brand           *string
	FabricationYear *int
	NbPassenger     *int
	NbSeat          *int
	Port            *string
	Latitude        *float64
	Longitude       *float64
	MotorPower      *int
	Motor           *Motor
	License         *License
	BoatType        *Type
	Equipment       *[]Equipment
	Caution         *float64
}

// TripCapacity reports the largest nb_passengers among trips bound to a boat.
type TripCapacity interface {
	MaxTripPassengers(ctx context.Context, boatID string) (int, error)
}

// FileRemover deletes uploads a boat no longer points at.
type FileRemover interface {
	DeleteByURL(ctx context.Context, url string) error
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Boat, error)
	GetByID(ctx context.Context, actor auth.Actor, id string) (*Boat, error)
	List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Boat, int, error)
	Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Boat, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
	// AuthorizePhoto checks that actor may change the photo of boat id.
	AuthorizePhoto(ctx context.Context, actor auth.Actor, id string) error
	SetPhoto(ctx context.Context, actor auth.Actor, id string, url string) error
}

type service struct {
	repo   Repository
	trips  TripCapacity
	files  FileRemover
	policy *auth.Policy
}

func NewService(repo Repository, trips TripCapacity, files FileRemover, policy *auth.Policy) Service {
	return &service{repo: repo, trips: trips, files: files, policy: policy}
}

// validateBoat checks the logical rules for a Boat struct.
func validateBoat(b *Boat) error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrNameRequired
	}
	if b.NbPassenger <= 0 {
		return ErrInvalidPassengers
	}
	if b.NbSeat < 0 {
		return ErrInvalidSeats
	}
	if !b.Motor.Valid() {
		return ErrInvalidMotor
	}
	if !b.License.Valid() {
		return ErrInvalidLicense
	}
	if !b.BoatType.Valid() {
		return ErrInvalidBoatType
	}
	if b.Latitude != nil && (*b.Latitude < -90 || *b.Latitude > 90) {
		return ErrInvalidGeo
	}
	if b.Longitude != nil && (*b.Longitude < -180 || *b.Longitude > 180) {
		return ErrInvalidGeo
	}
	if b.Caution < 0 {
		return ErrInvalidCautionValue
	}
	return ValidateEquipment(b.Equipment)
}

func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Boat, error) {
	if err := s.policy.AuthorizeBoatCreate(actor); err != nil {
		return nil, err
	}

	b := &Boat{
		OwnerID:         actor.UserID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Brand:           req.Brand,
		FabricationYear: req.FabricationYear,
		NbPassenger:     req.NbPassenger,
		NbSeat:          req.NbSeat,
		Port:            req.Port,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		MotorPower:      req.MotorPower,
		Motor:           req.Motor,
		License:         req.License,
		BoatType:        req.BoatType,
		Equipment:       req.Equipment,
		Caution:         req.Caution,
	}
	if err := validateBoat(b); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	b.Equipment = DecodeEquipment(EncodeEquipment(b.Equipment))
	return b, nil
}

func (s *service) GetByID(ctx context.Context, actor auth.Actor, id string) (*Boat, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, auth.ActionRead, b.OwnerID); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Boat, int, error) {
	filter.OwnerID = s.policy.ScopeOwner(actor, filter.OwnerID)
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Boat, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, auth.ActionUpdate, b.OwnerID); err != nil {
		return nil, err
	}

	previousCapacity := b.NbPassenger
	apply(b, req)

	if err := validateBoat(b); err != nil {
		return nil, err
	}

	// Trips bound to this boat must still fit.
	if b.NbPassenger < previousCapacity {
		needed, err := s.trips.MaxTripPassengers(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		if needed > b.NbPassenger {
			return nil, apperror.Wrap(ErrCapacityBelowTrips, http.StatusBadRequest,
				fmt.Sprintf("nb_passenger %d is below the %d passengers of a trip using this boat", b.NbPassenger, needed))
		}
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	b.Equipment = DecodeEquipment(EncodeEquipment(b.Equipment))
	return b, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(actor, auth.ActionDelete, b.OwnerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if b.PhotoURL != nil {
		s.removePhoto(ctx, *b.PhotoURL)
	}
	return nil
}

func (s *service) AuthorizePhoto(ctx context.Context, actor auth.Actor, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.policy.Authorize(actor, auth.ActionUpdate, b.OwnerID)
}

// SetPhoto points the boat at url and removes the upload it replaces.
func (s *service) SetPhoto(ctx context.Context, actor auth.Actor, id string, url string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(actor, auth.ActionUpdate, b.OwnerID); err != nil {
		return err
	}
	if err := s.repo.SetPhotoURL(ctx, id, url); err != nil {
		return err
	}
	if b.PhotoURL != nil && *b.PhotoURL != url {
		s.removePhoto(ctx, *b.PhotoURL)
	}
	return nil
}

func (s *service) removePhoto(ctx context.Context, url string) {
	if err := s.files.DeleteByURL(ctx, url); err != nil {
		slog.WarnContext(ctx, "failed to remove boat photo", "url", url, "error", err)
	}
}

// apply merges the whitelisted fields of req into b.
func apply(b *Boat, req UpdateRequest) {
	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Brand != nil {
		b.Brand = *req.Brand
	}
	if req.FabricationYear != nil {
		b.FabricationYear = req.FabricationYear
	}
	if req.NbPassenger != nil {
		b.NbPassenger = *req.NbPassenger
	}
	if req.NbSeat != nil {
		b.NbSeat = *req.NbSeat
	}
	if req.Port != nil {
		b.Port = *req.Port
	}
	if req.Latitude != nil {
		b.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		b.Longitude = req.Longitude
	}
	if req.MotorPower != nil {
		b.MotorPower = req.MotorPower
	}
	if req.Motor != nil {
		b.Motor = *req.Motor
	}
	if req.License != nil {
		b.License = *req.License
	}
	if req.BoatType != nil {
		b.BoatType = *req.BoatType
	}
	if req.Equipment != nil {
		b.Equipment = *req.Equipment
	}
	if req.Caution != nil {
		b.Caution = *req.Caution
	}
}
