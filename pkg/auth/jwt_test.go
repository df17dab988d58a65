package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaclinic/scheduling-api/internal/model"
)

func newTestUser() *model.User {
	return &model.User{
		Base:     model.Base{ID: uuid.New()},
		ClinicID: uuid.New(),
		Email:    "admin@clinic.test",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	user := newTestUser()

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ClinicID, claims.ClinicID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService(JWTConfig{Secret: "secret-a", ExpiryHours: 1})
	verifier := NewJWTService(JWTConfig{Secret: "secret-b", ExpiryHours: 1})

	token, err := issuer.GenerateToken(newTestUser())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret", ExpiryHours: -2}).(*jwtService)
	// A non-positive expiry falls back to the default, so force it here.
	svc.expiry = -time.Hour

	token, err := svc.GenerateToken(newTestUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret", ExpiryHours: 1})

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
