package auth

import (
	"context"
	"errors"

	"github.com/agendaclinic/scheduling-api/internal/model"
	"github.com/agendaclinic/scheduling-api/internal/repository"
	"github.com/agendaclinic/scheduling-api/pkg/auth"
	"github.com/agendaclinic/scheduling-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service is the identity provider adapter: it exchanges credentials for a
// token scoped to the user's clinic. The scheduling core trusts that clinic
// id as the tenant boundary for every operation.
type Service struct {
	users  repository.UserRepository
	jwtSvc auth.JWTService
	hasher security.PasswordHasher
}

func NewService(users repository.UserRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		users:  users,
		jwtSvc: jwtSvc,
		hasher: hasher,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Same failure for unknown email and wrong password.
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtSvc.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:    token,
		ClinicID: user.ClinicID,
	}, nil
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	return s.jwtSvc.ValidateToken(token)
}
