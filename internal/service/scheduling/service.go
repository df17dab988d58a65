package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agendaclinic/scheduling-api/internal/model"
	"github.com/agendaclinic/scheduling-api/internal/repository"
	apperrors "github.com/agendaclinic/scheduling-api/pkg/errors"
	"github.com/agendaclinic/scheduling-api/pkg/metrics"
	"github.com/agendaclinic/scheduling-api/pkg/validator"
)

// Service is the appointment scheduling core: the upsert flow and the slot
// availability query. The caller's clinic identity is an explicit parameter
// on every operation; nothing here reads ambient session state.
type Service struct {
	doctors      repository.DoctorRepository
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	validator    validator.Validator
	metrics      *metrics.Metrics
}

func NewService(
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	appointments repository.AppointmentRepository,
	validator validator.Validator,
	m *metrics.Metrics,
) *Service {
	return &Service{
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
		validator:    validator,
		metrics:      m,
	}
}

// Upsert creates an appointment when the request carries no id and updates
// the existing one when it does. The commit is guarded by the store's
// (doctor, date, slot) uniqueness constraint, so a losing concurrent request
// surfaces as a slot-unavailable failure rather than a double booking.
func (s *Service) Upsert(ctx context.Context, clinicID uuid.UUID, req *model.UpsertAppointmentRequest) (*model.Appointment, error) {
	norm, verr := s.normalize(req)
	if verr != nil {
		s.countUpsert("unknown", "validation_failed")
		return nil, verr
	}

	operation := "create"
	if norm.id != uuid.Nil {
		operation = "update"
	}

	doctor, err := s.doctors.GetForClinic(ctx, norm.doctorID, clinicID)
	if err != nil {
		ferr := tenantFailure(err)
		s.countFailure(operation, ferr)
		return nil, ferr
	}
	if _, err := s.patients.GetForClinic(ctx, norm.patientID, clinicID); err != nil {
		ferr := tenantFailure(err)
		s.countFailure(operation, ferr)
		return nil, ferr
	}

	price := doctor.AppointmentPriceCents
	if norm.price != nil {
		price = *norm.price
	}

	var appt *model.Appointment
	if norm.id == uuid.Nil {
		appt, err = s.create(ctx, clinicID, doctor, norm, price)
	} else {
		appt, err = s.update(ctx, clinicID, doctor, norm, price)
	}
	if err != nil {
		s.countFailure(operation, err)
		return nil, err
	}

	s.countUpsert(operation, "success")
	return appt, nil
}

func (s *Service) create(ctx context.Context, clinicID uuid.UUID, doctor *model.Doctor, norm *upsertRequest, price int64) (*model.Appointment, error) {
	free, err := s.availableSlots(ctx, doctor, norm.date, uuid.Nil)
	if err != nil {
		return nil, apperrors.NewPersistence(err)
	}
	if !containsSlot(free, norm.slot) {
		return nil, apperrors.NewSlotUnavailable(doctor.ID.String(), norm.date.Format(dateLayout), norm.slot)
	}

	now := time.Now()
	appt := &model.Appointment{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ClinicID:   clinicID,
		DoctorID:   doctor.ID,
		PatientID:  norm.patientID,
		Date:       norm.date,
		SlotTime:   norm.slot,
		PriceCents: price,
	}

	if err := s.appointments.Create(ctx, appt, newEvent(model.EventAppointmentCreated, appt)); err != nil {
		return nil, s.commitFailure(doctor.ID, norm, err)
	}
	return appt, nil
}

func (s *Service) update(ctx context.Context, clinicID uuid.UUID, doctor *model.Doctor, norm *upsertRequest, price int64) (*model.Appointment, error) {
	existing, err := s.appointments.GetForClinic(ctx, norm.id, clinicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("appointment")
		}
		return nil, apperrors.NewPersistence(err)
	}

	// Re-check availability only when the appointment actually moves; an
	// update that keeps its own doctor-day-slot never conflicts with itself.
	moved := existing.DoctorID != doctor.ID ||
		!sameDay(existing.Date, norm.date) ||
		existing.SlotTime != norm.slot
	if moved {
		free, err := s.availableSlots(ctx, doctor, norm.date, existing.ID)
		if err != nil {
			return nil, apperrors.NewPersistence(err)
		}
		if !containsSlot(free, norm.slot) {
			return nil, apperrors.NewSlotUnavailable(doctor.ID.String(), norm.date.Format(dateLayout), norm.slot)
		}
	}

	appt := &model.Appointment{
		Base: model.Base{
			ID:        existing.ID,
			CreatedAt: existing.CreatedAt,
			UpdatedAt: time.Now(),
		},
		ClinicID:   clinicID,
		DoctorID:   doctor.ID,
		PatientID:  norm.patientID,
		Date:       norm.date,
		SlotTime:   norm.slot,
		PriceCents: price,
	}

	if err := s.appointments.Update(ctx, appt, newEvent(model.EventAppointmentUpdated, appt)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("appointment")
		}
		return nil, s.commitFailure(doctor.ID, norm, err)
	}
	return appt, nil
}

// AvailableSlots is the read-only slot query backing the booking form. It is
// recomputed from the store on every call.
func (s *Service) AvailableSlots(ctx context.Context, clinicID, doctorID uuid.UUID, date time.Time) ([]string, error) {
	var timer *prometheus.Timer
	if s.metrics != nil {
		timer = prometheus.NewTimer(s.metrics.SlotQueryLatency)
		defer timer.ObserveDuration()
	}

	doctor, err := s.doctors.GetForClinic(ctx, doctorID, clinicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewTenant()
		}
		return nil, apperrors.NewPersistence(err)
	}

	free, err := s.availableSlots(ctx, doctor, date, uuid.Nil)
	if err != nil {
		return nil, apperrors.NewPersistence(err)
	}

	if s.metrics != nil {
		s.metrics.SlotsOffered.Observe(float64(len(free)))
	}
	return free, nil
}

// List returns the clinic's appointments in chronological order.
func (s *Service) List(ctx context.Context, clinicID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appts, err := s.appointments.List(ctx, clinicID, filters)
	if err != nil {
		return nil, apperrors.NewPersistence(err)
	}
	return appts, nil
}

// Delete removes an appointment owned by the caller's clinic.
func (s *Service) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	appt, err := s.appointments.GetForClinic(ctx, id, clinicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("appointment")
		}
		return apperrors.NewPersistence(err)
	}

	if err := s.appointments.Delete(ctx, id, clinicID, newEvent(model.EventAppointmentDeleted, appt)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("appointment")
		}
		return apperrors.NewPersistence(err)
	}
	return nil
}

func tenantFailure(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewTenant()
	}
	return apperrors.NewPersistence(err)
}

func (s *Service) countFailure(operation string, err error) {
	if aerr, ok := apperrors.AsAppError(err); ok {
		s.countUpsert(operation, outcomeLabel(aerr.Code))
	}
}

// commitFailure reclassifies a uniqueness violation at commit time as a
// slot-unavailable failure: it is a legitimate concurrent-booking race, not
// a system defect.
func (s *Service) commitFailure(doctorID uuid.UUID, norm *upsertRequest, err error) error {
	if errors.Is(err, repository.ErrDuplicateSlot) {
		return apperrors.NewSlotUnavailable(doctorID.String(), norm.date.Format(dateLayout), norm.slot)
	}
	return apperrors.NewPersistence(err)
}

func (s *Service) countUpsert(operation, outcome string) {
	if s.metrics != nil {
		s.metrics.UpsertTotal.WithLabelValues(operation, outcome).Inc()
	}
}

func outcomeLabel(code apperrors.ErrorCode) string {
	switch code {
	case apperrors.ErrTenant:
		return "tenant_failed"
	case apperrors.ErrSlotUnavailable:
		return "slot_unavailable"
	case apperrors.ErrNotFound:
		return "not_found"
	default:
		return "error"
	}
}

func newEvent(eventType string, appt *model.Appointment) *model.OutboxEvent {
	payload, err := json.Marshal(appt)
	if err != nil {
		payload = []byte("{}")
	}
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    string(model.OutboxStatusPending),
		CreatedAt: time.Now(),
	}
}
