package reservation

import (
	"context"
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
	"github.com/fisherfans/fisherfans-backend/internal/trip"
)

// CreateRequest carries data to reserve seats.
type CreateRequest struct {
	TripID          string
	ReservationDate calendar.Date
	NbSeats         int
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	ReservationDate *calendar.Date
	NbSeats         *int
}

// TripReader loads the trip a reservation belongs to.
type TripReader interface {
	GetByID(ctx context.Context, id string) (*trip.Trip, error)
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Reservation, error)
	GetByID(ctx context.Context, actor auth.Actor, id string) (*Reservation, error)
	List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Reservation, int, error)
	// ListForTrip lists reservations on one trip for its organizer or an admin.
	ListForTrip(ctx context.Context, actor auth.Actor, tripID string, filter Filter) ([]*Reservation, int, error)
	Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Reservation, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
}

type service struct {
	repo   Repository
	trips  TripReader
	policy *auth.Policy
	now    func() time.Time
}

func NewService(repo Repository, trips TripReader, policy *auth.Policy) Service {
	return &service{repo: repo, trips: trips, policy: policy, now: time.Now}
}

func (s *service) today() calendar.Date {
	return calendar.Today(s.now())
}

func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Reservation, error) {
	if actor.UserID == "" {
		return nil, auth.ErrUnauthenticated
	}
	if req.NbSeats <= 0 {
		return nil, ErrInvalidSeats
	}

	r := &Reservation{
		TripID:          req.TripID,
		UserID:          actor.UserID,
		ReservationDate: req.ReservationDate,
		NbSeats:         req.NbSeats,
	}

	err := s.repo.Book(ctx, req.TripID, func(ctx context.Context, b Booking) error {
		t := b.Trip()

		reserved, err := b.ReservedSeats(ctx, r.ReservationDate, "")
		if err != nil {
			return err
		}
		if err := CheckCapacity(t.NbPassengers, reserved, r.NbSeats); err != nil {
			return err
		}
		if err := CheckDate(r.ReservationDate, s.today(), t.Dates); err != nil {
			return err
		}

		r.TotalPrice = t.PriceFor(r.NbSeats)
		return b.Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) GetByID(ctx context.Context, actor auth.Actor, id string) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t, err := s.trips.GetByID(ctx, r.TripID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeReservationView(actor, r.UserID, t.OrganizerID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Reservation, int, error) {
	filter.UserID = s.policy.ScopeOwner(actor, filter.UserID)
	return s.repo.List(ctx, filter)
}

func (s *service) ListForTrip(ctx context.Context, actor auth.Actor, tripID string, filter Filter) ([]*Reservation, int, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.policy.Authorize(actor, auth.ActionRead, t.OrganizerID); err != nil {
		return nil, 0, err
	}

	filter.TripID = t.ID
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, auth.ActionUpdate, r.UserID); err != nil {
		return nil, err
	}
	if req.NbSeats != nil && *req.NbSeats <= 0 {
		return nil, ErrInvalidSeats
	}
	if req.NbSeats == nil && req.ReservationDate == nil {
		return r, nil
	}

	err = s.repo.Book(ctx, r.TripID, func(ctx context.Context, b Booking) error {
		t := b.Trip()
		apply(r, req)

		// Moving to another date changes which seats are counted.
		reserved, err := b.ReservedSeats(ctx, r.ReservationDate, r.ID)
		if err != nil {
			return err
		}
		if err := CheckCapacity(t.NbPassengers, reserved, r.NbSeats); err != nil {
			return err
		}
		if req.ReservationDate != nil {
			if err := CheckDate(r.ReservationDate, s.today(), t.Dates); err != nil {
				return err
			}
		}

		if req.NbSeats != nil {
			r.TotalPrice = t.PriceFor(r.NbSeats)
		}
		return b.Update(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(actor, auth.ActionDelete, r.UserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// apply merges the whitelisted fields of req into r.
func apply(r *Reservation, req UpdateRequest) {
	if req.ReservationDate != nil {
		r.ReservationDate = *req.ReservationDate
	}
	if req.NbSeats != nil {
		r.NbSeats = *req.NbSeats
	}
}
