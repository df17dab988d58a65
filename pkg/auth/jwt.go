package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/agendaclinic/scheduling-api/internal/model"
)

type JWTService interface {
	GenerateToken(user *model.User) (string, error)
	ValidateToken(token string) (*model.TokenClaims, error)
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(cfg JWTConfig) JWTService {
	expiry := time.Duration(cfg.ExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &jwtService{
		secret: []byte(cfg.Secret),
		expiry: expiry,
	}
}

// GenerateToken issues a token carrying the user's clinic as the tenant scope.
func (s *jwtService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"clinic_id": user.ClinicID.String(),
		"email":     user.Email,
		"iat":       now.Unix(),
		"exp":       now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(tokenStr string) (*model.TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	parsed, err := parseClaims(claims)
	if err != nil {
		return nil, err
	}
	return parsed, nil
}

func parseClaims(claims jwt.MapClaims) (*model.TokenClaims, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims: missing sub")
	}
	clinicID, ok := claims["clinic_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims: missing clinic_id")
	}
	email, _ := claims["email"].(string)

	tc := &model.TokenClaims{Email: email}
	var err error
	if tc.UserID, err = parseUUIDClaim(sub); err != nil {
		return nil, err
	}
	if tc.ClinicID, err = parseUUIDClaim(clinicID); err != nil {
		return nil, err
	}
	return tc, nil
}

func parseUUIDClaim(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token claims: %w", err)
	}
	return id, nil
}
