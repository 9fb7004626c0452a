package auth

import (
	"context"
	"net/http"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
)

// ErrUnknownSubject reports that a token no longer names an existing account.
var ErrUnknownSubject = apperror.New(http.StatusUnauthorized, "user not found")

// Role is the privilege level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// AccountClass distinguishes private individuals from professionals.
type AccountClass string

const (
	AccountIndividual   AccountClass = "individual"
	AccountProfessional AccountClass = "professional"
)

// Valid reports whether c is a known account class.
func (c AccountClass) Valid() bool {
	return c == AccountIndividual || c == AccountProfessional
}

// Actor is the identity acting on the current request.
type Actor struct {
	UserID       string
	Email        string
	Role         Role
	AccountClass AccountClass
	BoatLicense  *string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasBoatLicense reports whether the actor declared a boat license.
func (a Actor) HasBoatLicense() bool {
	return a.BoatLicense != nil && *a.BoatLicense != ""
}

// ActorResolver maps validated token claims to the account they were issued for.
// It returns ErrUnknownSubject when that account is gone.
type ActorResolver interface {
	ResolveActor(ctx context.Context, claims *Claims) (*Actor, error)
}
