package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agendaclinic/scheduling-api/internal/model"
	"github.com/agendaclinic/scheduling-api/internal/repository"
)

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func newFakeDoctorRepo(doctors ...*model.Doctor) *fakeDoctorRepo {
	m := make(map[uuid.UUID]*model.Doctor)
	for _, d := range doctors {
		m[d.ID] = d
	}
	return &fakeDoctorRepo{doctors: m}
}

func (f *fakeDoctorRepo) GetForClinic(_ context.Context, id, clinicID uuid.UUID) (*model.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok || d.ClinicID != clinicID {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (f *fakeDoctorRepo) List(_ context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range f.doctors {
		if d.ClinicID == clinicID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newFakePatientRepo(patients ...*model.Patient) *fakePatientRepo {
	m := make(map[uuid.UUID]*model.Patient)
	for _, p := range patients {
		m[p.ID] = p
	}
	return &fakePatientRepo{patients: m}
}

func (f *fakePatientRepo) GetForClinic(_ context.Context, id, clinicID uuid.UUID) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok || p.ClinicID != clinicID {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePatientRepo) List(_ context.Context, clinicID uuid.UUID) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range f.patients {
		if p.ClinicID == clinicID {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeAppointmentRepo mirrors the store contract, including the
// (doctor, date, slot) uniqueness constraint, so the race-at-commit path is
// testable without a database.
type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts map[uuid.UUID]*model.Appointment

	// forceCreateErr simulates a concurrent insert winning between the
	// availability check and the commit.
	forceCreateErr error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[uuid.UUID]*model.Appointment)}
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func (f *fakeAppointmentRepo) slotTaken(appt *model.Appointment) bool {
	for _, existing := range f.appts {
		if existing.ID == appt.ID {
			continue
		}
		if existing.DoctorID == appt.DoctorID &&
			dayKey(existing.Date) == dayKey(appt.Date) &&
			existing.SlotTime == appt.SlotTime {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *model.Appointment, _ *model.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forceCreateErr != nil {
		return f.forceCreateErr
	}
	if f.slotTaken(appt) {
		return repository.ErrDuplicateSlot
	}
	cp := *appt
	f.appts[appt.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, appt *model.Appointment, _ *model.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.appts[appt.ID]
	if !ok || existing.ClinicID != appt.ClinicID {
		return repository.ErrNotFound
	}
	if f.slotTaken(appt) {
		return repository.ErrDuplicateSlot
	}
	cp := *appt
	f.appts[appt.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id, clinicID uuid.UUID, _ *model.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.appts[id]
	if !ok || existing.ClinicID != clinicID {
		return repository.ErrNotFound
	}
	delete(f.appts, id)
	return nil
}

func (f *fakeAppointmentRepo) GetForClinic(_ context.Context, id, clinicID uuid.UUID) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	appt, ok := f.appts[id]
	if !ok || appt.ClinicID != clinicID {
		return nil, repository.ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) ListForDoctorDay(_ context.Context, doctorID uuid.UUID, date time.Time) ([]*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Appointment
	for _, appt := range f.appts {
		if appt.DoctorID == doctorID && dayKey(appt.Date) == dayKey(date) {
			cp := *appt
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, clinicID uuid.UUID, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Appointment
	for _, appt := range f.appts {
		if appt.ClinicID == clinicID {
			cp := *appt
			out = append(out, &cp)
		}
	}
	return out, nil
}
