package model

import (
	"github.com/google/uuid"
)

// User is a clinic staff login. Every user belongs to exactly one clinic,
// which is the tenant scope stamped into issued tokens.
type User struct {
	Base
	ClinicID     uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	Password     string    `db:"-" json:"password,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Status       string    `db:"status" json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string    `json:"token"`
	ClinicID uuid.UUID `json:"clinic_id"`
}

type TokenClaims struct {
	UserID   uuid.UUID
	ClinicID uuid.UUID
	Email    string
}
