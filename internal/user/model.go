package user

import (
	"net/http"
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
)

var (
	ErrNotFound                = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed        = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials      = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrEmailRequired           = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort        = apperror.New(http.StatusBadRequest, "password must be at least 8 characters")
	ErrNameRequired            = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidStatus           = apperror.New(http.StatusBadRequest, "status must be individual or professional")
	ErrInvalidRole             = apperror.New(http.StatusBadRequest, "role must be user or admin")
	ErrInvalidActivityType     = apperror.New(http.StatusBadRequest, "activity_type must be RENTAL or GUIDE")
	ErrCompanyDetailsForbidden = apperror.New(http.StatusBadRequest, "company_name and activity_type are only allowed for professional accounts")
)

const MinPasswordLength = 8

// ActivityType describes what a professional account offers.
type ActivityType string

const (
	ActivityRental ActivityType = "RENTAL"
	ActivityGuide  ActivityType = "GUIDE"
)

func (a ActivityType) Valid() bool {
	return a == ActivityRental || a == ActivityGuide
}

// User represents a registered account.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Name         string
	Firstname    string
	Phone        *string
	Address      *string
	PostalCode   *string
	City         *string
	Status       auth.AccountClass
	CompanyName  *string
	ActivityType *ActivityType
	BoatLicense  *string
	Role         auth.Role
	CreatedAt    time.Time
}

// Actor converts the user into the identity used by the authorization policy.
func (u *User) Actor() *auth.Actor {
	return &auth.Actor{
		UserID:       u.ID,
		Email:        u.Email,
		Role:         u.Role,
		AccountClass: u.Status,
		BoatLicense:  u.BoatLicense,
	}
}

// UserFilter defines filter options for listing users.
type UserFilter struct {
	ID     string // Set by the policy for non-admin callers.
	Email  string
	Name   string
	City   string
	Status auth.AccountClass
	Role   auth.Role

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
