package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

var (
	admin   = Actor{UserID: "admin-1", Role: RoleAdmin}
	owner   = Actor{UserID: "owner-1", Role: RoleUser, BoatLicense: ptr("LIC-42")}
	visitor = Actor{UserID: "visitor-1", Role: RoleUser}
)

func TestPolicy_Authorize(t *testing.T) {
	p := NewPolicy()

	tests := []struct {
		name    string
		actor   Actor
		action  Action
		ownerID string
		want    error
	}{
		{"anonymous", Actor{}, ActionRead, "owner-1", ErrUnauthenticated},
		{"admin on foreign resource", admin, ActionDelete, "owner-1", nil},
		{"owner reads", owner, ActionRead, "owner-1", nil},
		{"owner updates", owner, ActionUpdate, "owner-1", nil},
		{"visitor updates", visitor, ActionUpdate, "owner-1", ErrForbidden},
		{"visitor deletes", visitor, ActionDelete, "owner-1", ErrForbidden},
		{"empty owner", visitor, ActionRead, "", ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Authorize(tt.actor, tt.action, tt.ownerID)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPolicy_AuthorizeReservationView(t *testing.T) {
	p := NewPolicy()

	assert.NoError(t, p.AuthorizeReservationView(visitor, "visitor-1", "owner-1"), "renter")
	assert.NoError(t, p.AuthorizeReservationView(owner, "visitor-1", "owner-1"), "organizer")
	assert.NoError(t, p.AuthorizeReservationView(admin, "visitor-1", "owner-1"), "admin")

	stranger := Actor{UserID: "stranger", Role: RoleUser}
	assert.ErrorIs(t, p.AuthorizeReservationView(stranger, "visitor-1", "owner-1"), ErrForbidden)
}

func TestPolicy_ScopeOwner(t *testing.T) {
	p := NewPolicy()

	assert.Equal(t, "visitor-1", p.ScopeOwner(visitor, "owner-1"), "non-admin is pinned to self")
	assert.Equal(t, "visitor-1", p.ScopeOwner(visitor, ""))
	assert.Equal(t, "owner-1", p.ScopeOwner(admin, "owner-1"))
	assert.Equal(t, "", p.ScopeOwner(admin, ""), "admin without filter sees everything")
}

func TestPolicy_RoleChangeAndBoatRules(t *testing.T) {
	p := NewPolicy()

	assert.NoError(t, p.AuthorizeRoleChange(admin))
	assert.ErrorIs(t, p.AuthorizeRoleChange(owner), ErrAdminOnlyRole)

	assert.NoError(t, p.AuthorizeBoatCreate(owner))
	assert.ErrorIs(t, p.AuthorizeBoatCreate(visitor), ErrBoatLicenseNeeded)
	assert.ErrorIs(t, p.AuthorizeBoatCreate(Actor{}), ErrUnauthenticated)

	empty := Actor{UserID: "u", Role: RoleUser, BoatLicense: ptr("")}
	assert.ErrorIs(t, p.AuthorizeBoatCreate(empty), ErrBoatLicenseNeeded)

	assert.NoError(t, p.AuthorizeTripBoat(owner, "owner-1", "owner-1"))
	assert.ErrorIs(t, p.AuthorizeTripBoat(visitor, "visitor-1", "owner-1"), ErrForeignBoat)
	assert.ErrorIs(t, p.AuthorizeTripBoat(visitor, "visitor-1", ""), ErrForeignBoat)
	assert.NoError(t, p.AuthorizeTripBoat(admin, "visitor-1", "owner-1"))
}
