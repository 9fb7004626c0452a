package http

import (
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/request"
	"github.com/fisherfans/fisherfans-backend/internal/user"
)

// ListUsersRequest defines query parameters for listing users.
type ListUsersRequest struct {
	request.ListParams
	ID     string `form:"user_id" binding:"omitempty,uuid"`
	Email  string `form:"email"`
	Name   string `form:"name"`
	City   string `form:"city"`
	Status string `form:"status" binding:"omitempty,oneof=individual professional"`
	Role   string `form:"role" binding:"omitempty,oneof=user admin"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=name email created_at"`
}

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID           string             `json:"id"`
	Email        string             `json:"email"`
	Name         string             `json:"name"`
	Firstname    string             `json:"firstname"`
	Phone        *string            `json:"phone"`
	Address      *string            `json:"address"`
	PostalCode   *string            `json:"postal_code"`
	City         *string            `json:"city"`
	Status       auth.AccountClass  `json:"status"`
	CompanyName  *string            `json:"company_name"`
	ActivityType *user.ActivityType `json:"activity_type"`
	BoatLicense  *string            `json:"boat_license"`
	Role         auth.Role          `json:"role"`
	CreatedAt    time.Time          `json:"created_at"`
}

// UserTag is a brief representation of a user.
type UserTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Firstname:    u.Firstname,
		Phone:        u.Phone,
		Address:      u.Address,
		PostalCode:   u.PostalCode,
		City:         u.City,
		Status:       u.Status,
		CompanyName:  u.CompanyName,
		ActivityType: u.ActivityType,
		BoatLicense:  u.BoatLicense,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	Name         string  `json:"name" binding:"required"`
	Firstname    string  `json:"firstname"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	PostalCode   *string `json:"postal_code"`
	City         *string `json:"city"`
	Status       string  `json:"status" binding:"omitempty,oneof=individual professional"`
	CompanyName  *string `json:"company_name"`
	ActivityType *string `json:"activity_type" binding:"omitempty,oneof=RENTAL GUIDE"`
	BoatLicense  *string `json:"boat_license"`
}

func (r *RegisterRequest) ToService() user.RegisterRequest {
	return user.RegisterRequest{
		Email:        r.Email,
		Password:     r.Password,
		Name:         r.Name,
		Firstname:    r.Firstname,
		Phone:        r.Phone,
		Address:      r.Address,
		PostalCode:   r.PostalCode,
		City:         r.City,
		Status:       auth.AccountClass(r.Status),
		CompanyName:  r.CompanyName,
		ActivityType: activityType(r.ActivityType),
		BoatLicense:  r.BoatLicense,
	}
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest defines fields allowed to be updated via PATCH /users/:id.
// Use pointers to distinguish between "field not sent" and "field sent as empty".
type UpdateUserRequest struct {
	Email        *string `json:"email" binding:"omitempty,email"`
	Password     *string `json:"password" binding:"omitempty,min=8"`
	Name         *string `json:"name" binding:"omitempty,min=1"`
	Firstname    *string `json:"firstname"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	PostalCode   *string `json:"postal_code"`
	City         *string `json:"city"`
	Status       *string `json:"status" binding:"omitempty,oneof=individual professional"`
	CompanyName  *string `json:"company_name"`
	ActivityType *string `json:"activity_type" binding:"omitempty,oneof=RENTAL GUIDE"`
	BoatLicense  *string `json:"boat_license"`
	Role         *string `json:"role" binding:"omitempty,oneof=user admin"`
}

func (r *UpdateUserRequest) ToService() user.UpdateUserRequest {
	req := user.UpdateUserRequest{
		Email:        r.Email,
		Password:     r.Password,
		Name:         r.Name,
		Firstname:    r.Firstname,
		Phone:        r.Phone,
		Address:      r.Address,
		PostalCode:   r.PostalCode,
		City:         r.City,
		CompanyName:  r.CompanyName,
		ActivityType: activityType(r.ActivityType),
		BoatLicense:  r.BoatLicense,
	}
	if r.Status != nil {
		s := auth.AccountClass(*r.Status)
		req.Status = &s
	}
	if r.Role != nil {
		role := auth.Role(*r.Role)
		req.Role = &role
	}
	return req
}

func activityType(v *string) *user.ActivityType {
	if v == nil {
		return nil
	}
	a := user.ActivityType(*v)
	return &a
}

// LoginResponse returns the token and user info.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse returns the current user info.
type MeResponse struct {
	User UserResponse `json:"user"`
}
