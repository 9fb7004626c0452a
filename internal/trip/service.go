package trip

import (
	"context"
	"errors"
	"strings"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/boat"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
)

// CreateRequest carries data to publish a trip.
type CreateRequest struct {
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
}

// UpdateRequest carries data for partial updates.
// Dates and Schedules replace the whole sequence when non-nil.
type UpdateRequest struct {
	BoatID        *string
	Title         *string
	Description   *string
	PracticalInfo *string
	TripType      *Type
	PricingType   *PricingType
	Dates         *[]calendar.DateRange
	Schedules     *[]calendar.Schedule
	NbPassengers  *int
	Price         *float64
}

// BoatReader is the boat data a trip depends on.
type BoatReader interface {
	GetByID(ctx context.Context, id string) (*boat.Boat, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Trip, error)
	GetByID(ctx context.Context, actor auth.Actor, id string) (*Trip, error)
	List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Trip, int, error)
	Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Trip, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
}

type service struct {
	repo   Repository
	boats  BoatReader
	policy *auth.Policy
}

func NewService(repo Repository, boats BoatReader, policy *auth.Policy) Service {
	return &service{repo: repo, boats: boats, policy: policy}
}

func validateTrip(t *Trip) error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if !t.TripType.Valid() {
		return ErrInvalidTripType
	}
	if !t.PricingType.Valid() {
		return ErrInvalidPricingType
	}
	if t.Price < 0 {
		return ErrInvalidPrice
	}
	if t.NbPassengers <= 0 {
		return ErrInvalidPassengers
	}
	if len(t.Dates) == 0 {
		return ErrDatesRequired
	}
	return nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Trip, error) {
	if actor.UserID == "" {
		return nil, auth.ErrUnauthenticated
	}

	if !actor.IsAdmin() {
		n, err := s.boats.CountByOwner(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrNoBoat
		}
	}

	b, err := s.boatFor(ctx, actor, actor.UserID, req.BoatID)
	if err != nil {
		return nil, err
	}

	t := &Trip{
		OrganizerID:   actor.UserID,
		BoatID:        b.ID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		PracticalInfo: req.PracticalInfo,
		TripType:      req.TripType,
		PricingType:   req.PricingType,
		Dates:         req.Dates,
		Schedules:     req.Schedules,
		NbPassengers:  req.NbPassengers,
		Price:         req.Price,
	}
	if t.Schedules == nil {
		t.Schedules = []calendar.Schedule{}
	}
	if err := validateTrip(t); err != nil {
		return nil, err
	}
	if err := ValidateDateRanges(t.Dates); err != nil {
		return nil, err
	}
	if err := ValidateCapacity(t.NbPassengers, b.NbPassenger); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// boatFor loads boatID and checks organizerID may bind a trip to it.
// A missing boat is reported as foreign to non-admins.
func (s *service) boatFor(ctx context.Context, actor auth.Actor, organizerID, boatID string) (*boat.Boat, error) {
	b, err := s.boats.GetByID(ctx, boatID)
	if err != nil {
		if errors.Is(err, boat.ErrNotFound) && !actor.IsAdmin() {
			return nil, auth.ErrForeignBoat
		}
		return nil, err
	}
	if err := s.policy.AuthorizeTripBoat(actor, organizerID, b.OwnerID); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, actor auth.Actor, id string) (*Trip, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, auth.ActionRead, t.OrganizerID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Trip, int, error) {
	filter.OrganizerID = s.policy.ScopeOwner(actor, filter.OrganizerID)
	return s.repo.List(ctx, filter)
}

// Update runs under the trip row lock bookings take, so a capacity cut
// cannot interleave with a booking on the same trip.
func (s *service) Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Trip, error) {
	var updated *Trip
	err := s.repo.Lock(ctx, id, func(ctx context.Context, locked Locked) error {
		t := locked.Trip()
		if err := s.policy.Authorize(actor, auth.ActionUpdate, t.OrganizerID); err != nil {
			return err
		}

		previousBoat := t.BoatID
		previousCapacity := t.NbPassengers
		apply(t, req)

		if err := validateTrip(t); err != nil {
			return err
		}
		if req.Dates != nil {
			if err := ValidateDateRanges(t.Dates); err != nil {
				return err
			}
		}

		boatChanged := t.BoatID != previousBoat
		if boatChanged || t.NbPassengers != previousCapacity {
			var b *boat.Boat
			var err error
			if boatChanged {
				b, err = s.boatFor(ctx, actor, t.OrganizerID, t.BoatID)
			} else {
				// The bound boat is not re-checked for ownership.
				b, err = s.boats.GetByID(ctx, t.BoatID)
			}
			if err != nil {
				return err
			}
			if err := ValidateCapacity(t.NbPassengers, b.NbPassenger); err != nil {
				return err
			}
		}

		if t.NbPassengers < previousCapacity {
			reserved, err := locked.MaxReservedSeats(ctx)
			if err != nil {
				return err
			}
			if err := ValidateReservedSeats(t.NbPassengers, reserved); err != nil {
				return err
			}
		}

		if err := locked.Update(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(actor, auth.ActionDelete, t.OrganizerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// apply merges the whitelisted fields of req into t.
func apply(t *Trip, req UpdateRequest) {
	if req.BoatID != nil {
		t.BoatID = *req.BoatID
	}
	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.PracticalInfo != nil {
		t.PracticalInfo = *req.PracticalInfo
	}
	if req.TripType != nil {
		t.TripType = *req.TripType
	}
	if req.PricingType != nil {
		t.PricingType = *req.PricingType
	}
	if req.Dates != nil {
		t.Dates = *req.Dates
	}
	if req.Schedules != nil {
		t.Schedules = *req.Schedules
	}
	if req.NbPassengers != nil {
		t.NbPassengers = *req.NbPassengers
	}
	if req.Price != nil {
		t.Price = *req.Price
	}
}
