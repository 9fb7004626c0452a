package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
)

// RegisterRequest carries data to create an account.
type RegisterRequest struct {
	Email        string
	Password     string
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
}

// UpdateUserRequest carries data for partial updates. Nil fields are left untouched.
type UpdateUserRequest struct {
	Email        *string
	Password     *string
	Name         *string
	Firstname    *string
	Phone        *string
	Address      *string
	PostalCode   *string
	City         *string
	Status       *auth.AccountClass
	CompanyName  *string
	ActivityType *ActivityType
	BoatLicense  *string
	Role         *auth.Role
}

// Session is the result of a successful register or login.
type Session struct {
	User        *User
	AccessToken string
}

// UploadRemover deletes every upload of a user.
type UploadRemover interface {
	DeleteOwnedBy(ctx context.Context, userID string) error
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	GetByID(ctx context.Context, actor auth.Actor, id string) (*User, error)
	List(ctx context.Context, actor auth.Actor, filter UserFilter) ([]*User, int, error)
	Update(ctx context.Context, actor auth.Actor, id string, req UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
	ResolveActor(ctx context.Context, claims *auth.Claims) (*auth.Actor, error)
}

type service struct {
	repo        Repository
	hasher      auth.PasswordHasher
	jwt         *auth.JWTManager
	revocations auth.RevocationStore
	uploads     UploadRemover
	policy      *auth.Policy
}

// NewService creates a new user Service.
func NewService(
	repo Repository,
	hasher auth.PasswordHasher,
	jwt *auth.JWTManager,
	revocations auth.RevocationStore,
	uploads UploadRemover,
	policy *auth.Policy,
) Service {
	return &service{
		repo:        repo,
		hasher:      hasher,
		jwt:         jwt,
		revocations: revocations,
		uploads:     uploads,
		policy:      policy,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Firstname:    strings.TrimSpace(req.Firstname),
		Phone:        req.Phone,
		Address:      req.Address,
		PostalCode:   req.PostalCode,
		City:         req.City,
		Status:       req.Status,
		CompanyName:  normalizeOptional(req.CompanyName),
		ActivityType: req.ActivityType,
		BoatLicense:  normalizeOptional(req.BoatLicense),
		// Self-registration never grants admin.
		Role: auth.RoleUser,
	}
	if u.Status == "" {
		u.Status = auth.AccountIndividual
	}
	if err := validateProfile(u); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.issue(u)
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	clean := normalizeEmail(email)
	if clean == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, clean)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(u)
}

// Logout revokes the presented token until it would have expired anyway.
func (s *service) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return auth.ErrUnauthenticated
	}
	until := time.Now()
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	return s.revocations.Revoke(ctx, claims.ID, until)
}

func (s *service) GetByID(ctx context.Context, actor auth.Actor, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, auth.ActionRead, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, filter UserFilter) ([]*User, int, error) {
	filter.ID = s.policy.ScopeOwner(actor, filter.ID)
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id string, req UpdateUserRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, auth.ActionUpdate, u.ID); err != nil {
		return nil, err
	}
	if req.Role != nil {
		if err := s.policy.AuthorizeRoleChange(actor); err != nil {
			return nil, err
		}
	}

	if err := s.apply(u, req); err != nil {
		return nil, err
	}
	if err := validateProfile(u); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(actor, auth.ActionDelete, u.ID); err != nil {
		return err
	}
	// File rows cascade with the user, so the stored objects go first.
	if err := s.uploads.DeleteOwnedBy(ctx, u.ID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ResolveActor implements auth.ActorResolver.
// The email in the token must still belong to the account it was issued for.
func (s *service) ResolveActor(ctx context.Context, claims *auth.Claims) (*auth.Actor, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(claims.Subject))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrUnknownSubject
		}
		return nil, err
	}
	if u.ID != claims.UserID {
		return nil, auth.ErrUnknownSubject
	}
	return u.Actor(), nil
}

func (s *service) issue(u *User) (*Session, error) {
	token, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Session{User: u, AccessToken: token}, nil
}

// apply merges the whitelisted fields of req into u.
func (s *service) apply(u *User, req UpdateUserRequest) error {
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return ErrEmailRequired
		}
		u.Email = email
	}
	if req.Password != nil {
		if len(*req.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return ErrNameRequired
		}
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Firstname != nil {
		u.Firstname = strings.TrimSpace(*req.Firstname)
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Address != nil {
		u.Address = req.Address
	}
	if req.PostalCode != nil {
		u.PostalCode = req.PostalCode
	}
	if req.City != nil {
		u.City = req.City
	}
	if req.Status != nil {
		u.Status = *req.Status
		// Leaving the professional class drops the stored company details.
		if u.Status != auth.AccountProfessional {
			u.CompanyName = nil
			u.ActivityType = nil
		}
	}
	if req.CompanyName != nil {
		u.CompanyName = normalizeOptional(req.CompanyName)
	}
	if req.ActivityType != nil {
		u.ActivityType = req.ActivityType
	}
	if req.BoatLicense != nil {
		u.BoatLicense = normalizeOptional(req.BoatLicense)
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	return nil
}

// validateProfile checks enumerations and that only professionals carry company details.
func validateProfile(u *User) error {
	if !u.Status.Valid() {
		return ErrInvalidStatus
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	if u.ActivityType != nil && !u.ActivityType.Valid() {
		return ErrInvalidActivityType
	}
	if u.Status != auth.AccountProfessional && (u.CompanyName != nil || u.ActivityType != nil) {
		return ErrCompanyDetailsForbidden
	}
	return nil
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeOptional maps blank strings to nil.
func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
