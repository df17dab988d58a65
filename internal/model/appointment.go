package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment occupies exactly one slot of one doctor's day. SlotTime is the
// slot start in "HH:MM", grid-aligned to the configured slot interval.
type Appointment struct {
	Base
	ClinicID   uuid.UUID `db:"clinic_id" json:"clinic_id"`
	DoctorID   uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	Date       time.Time `db:"date" json:"date"`
	SlotTime   string    `db:"slot_time" json:"slot_time"`
	PriceCents int64     `db:"price_cents" json:"price_cents"`
}

// UpsertAppointmentRequest is the raw client payload for the single write
// operation. An absent ID means create, a present one means update.
type UpsertAppointmentRequest struct {
	ID         string `json:"id" validate:"omitempty,uuid"`
	PatientID  string `json:"patient_id" validate:"required,uuid"`
	DoctorID   string `json:"doctor_id" validate:"required,uuid"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,datetime=15:04"`
	PriceCents *int64 `json:"price_cents" validate:"omitempty,gt=0"`
}

type AppointmentFilters struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}
