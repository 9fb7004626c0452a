package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateAccessToken("u-1", "angler@example.com", AccountProfessional)
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "angler@example.com", claims.Subject)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, AccountProfessional, claims.Status)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
}

func TestJWTManager_UniqueTokenIDs(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	a, err := m.GenerateAccessToken("u-1", "a@example.com", AccountIndividual)
	require.NoError(t, err)
	b, err := m.GenerateAccessToken("u-1", "a@example.com", AccountIndividual)
	require.NoError(t, err)

	ca, err := m.ParseAndValidate(a)
	require.NoError(t, err)
	cb, err := m.ParseAndValidate(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	issued := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateAccessToken("u-1", "a@example.com", AccountIndividual)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	foreign, err := other.GenerateAccessToken("u-1", "a@example.com", AccountIndividual)
	require.NoError(t, err)

	sign := func(claims *Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return s
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"foreign signature", foreign},
		{"missing subject", sign(&Claims{UserID: "u-1", Status: AccountIndividual, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}})},
		{"missing user id", sign(&Claims{Status: AccountIndividual, RegisteredClaims: jwt.RegisteredClaims{Subject: "a@example.com", ExpiresAt: exp}})},
		{"unknown status", sign(&Claims{UserID: "u-1", Status: "pirate", RegisteredClaims: jwt.RegisteredClaims{Subject: "a@example.com", ExpiresAt: exp}})},
		{"no expiry", sign(&Claims{UserID: "u-1", Status: AccountIndividual, RegisteredClaims: jwt.RegisteredClaims{Subject: "a@example.com"}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ParseAndValidate(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTManager_GenerateRejectsInvalidStatus(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	_, err := m.GenerateAccessToken("u-1", "a@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidAccountClass)
}
