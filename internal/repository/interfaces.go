package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/agendaclinic/scheduling-api/internal/model"
)

// Sentinel errors the service layer branches on. ErrNotFound covers both
// "does not exist" and "belongs to another clinic" so callers cannot probe
// another tenant's records.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateSlot = errors.New("slot already booked")
)

// All repository interfaces in one file
type (
	// DoctorRepository reads doctors; doctor lifecycle is managed elsewhere.
	DoctorRepository interface {
		GetForClinic(ctx context.Context, id, clinicID uuid.UUID) (*model.Doctor, error)
		List(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error)
	}

	// PatientRepository reads patients; patient lifecycle is managed elsewhere.
	PatientRepository interface {
		GetForClinic(ctx context.Context, id, clinicID uuid.UUID) (*model.Patient, error)
		List(ctx context.Context, clinicID uuid.UUID) ([]*model.Patient, error)
	}

	// AppointmentRepository owns the doctor-day ledger. Mutations write the
	// matching outbox event in the same transaction, and inserts/updates
	// surface ErrDuplicateSlot when the (doctor, date, slot) uniqueness
	// constraint rejects the commit.
	AppointmentRepository interface {
		Create(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent) error
		Update(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent) error
		Delete(ctx context.Context, id, clinicID uuid.UUID, event *model.OutboxEvent) error
		GetForClinic(ctx context.Context, id, clinicID uuid.UUID) (*model.Appointment, error)
		ListForDoctorDay(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*model.Appointment, error)
		List(ctx context.Context, clinicID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	}

	UserRepository interface {
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}

	OutboxRepository interface {
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	}
)
