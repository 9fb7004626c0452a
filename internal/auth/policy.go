package auth

import (
	"net/http"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
)

var (
	ErrUnauthenticated   = apperror.New(http.StatusUnauthorized, "authentication required")
	ErrForbidden         = apperror.New(http.StatusForbidden, "permission denied")
	ErrAdminOnlyRole     = apperror.New(http.StatusForbidden, "only admins can update the role")
	ErrBoatLicenseNeeded = apperror.New(http.StatusForbidden, "a boat license is required to register a boat")
	ErrForeignBoat       = apperror.New(http.StatusForbidden, "User can only create trips with their own boats")
)

// Action is an operation checked by the Policy.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)

// Policy decides whether an actor may operate on a resource.
// Callers load the target first so that a missing resource answers NotFound
// before any permission decision is made.
type Policy struct{}

// NewPolicy creates the authorization policy.
func NewPolicy() *Policy {
	return &Policy{}
}

// Authorize permits admins everything and everyone else only resources they own.
// ownerID is the owner (boats, logs, users), organizer (trips) or renter (reservations).
func (p *Policy) Authorize(actor Actor, action Action, ownerID string) error {
	if actor.UserID == "" {
		return ErrUnauthenticated
	}
	if actor.IsAdmin() {
		return nil
	}
	if ownerID != "" && ownerID == actor.UserID {
		return nil
	}
	return ErrForbidden
}

// AuthorizeReservationView also lets the trip organizer read reservations on their trip.
func (p *Policy) AuthorizeReservationView(actor Actor, renterID, organizerID string) error {
	if err := p.Authorize(actor, ActionRead, renterID); err == nil {
		return nil
	}
	return p.Authorize(actor, ActionRead, organizerID)
}

// ScopeOwner returns the owner filter to apply to list operations.
// Non-admins are pinned to themselves; admins may pass any user or none.
func (p *Policy) ScopeOwner(actor Actor, requested string) string {
	if actor.IsAdmin() {
		return requested
	}
	return actor.UserID
}

// AuthorizeRoleChange rejects role updates from non-admins, whoever the target is.
func (p *Policy) AuthorizeRoleChange(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	return ErrAdminOnlyRole
}

// AuthorizeBoatCreate requires the actor to hold a boat license.
func (p *Policy) AuthorizeBoatCreate(actor Actor) error {
	if actor.UserID == "" {
		return ErrUnauthenticated
	}
	if !actor.HasBoatLicense() {
		return ErrBoatLicenseNeeded
	}
	return nil
}

// AuthorizeTripBoat requires the trip organizer to own the boat the trip is
// bound to. Admins may bind any boat.
func (p *Policy) AuthorizeTripBoat(actor Actor, organizerID, boatOwnerID string) error {
	if actor.IsAdmin() {
		return nil
	}
	if organizerID == "" || organizerID != boatOwnerID {
		return ErrForeignBoat
	}
	return nil
}
