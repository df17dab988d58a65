package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaclinic/scheduling-api/internal/model"
	"github.com/agendaclinic/scheduling-api/internal/repository"
	pkgauth "github.com/agendaclinic/scheduling-api/pkg/auth"
	"github.com/agendaclinic/scheduling-api/pkg/security"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (*Service, *model.User) {
	t.Helper()

	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		ClinicID:     uuid.New(),
		Email:        "admin@clinic.test",
		PasswordHash: hash,
	}

	users := &fakeUserRepo{users: map[string]*model.User{user.Email: user}}
	jwtSvc := pkgauth.NewJWTService(pkgauth.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	return NewService(users, jwtSvc, hasher), user
}

func TestLogin(t *testing.T) {
	svc, user := newTestService(t)

	resp, err := svc.Login(context.Background(), user.Email, "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ClinicID, resp.ClinicID)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ClinicID, claims.ClinicID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, user := newTestService(t)

	_, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	// The failure is indistinguishable from a wrong password.
	_, err := svc.Login(context.Background(), "nobody@clinic.test", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
