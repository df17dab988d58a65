package model

import (
	"github.com/google/uuid"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	Base
	ClinicID uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name     string    `db:"name" json:"name"`
	Email    string    `db:"email" json:"email"`
	Phone    string    `db:"phone" json:"phone"`
	Status   string    `db:"status" json:"status"`
}
