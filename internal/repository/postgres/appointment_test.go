package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaclinic/scheduling-api/internal/model"
	"github.com/agendaclinic/scheduling-api/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func testAppointment() *model.Appointment {
	now := time.Now()
	return &model.Appointment{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ClinicID:   uuid.New(),
		DoctorID:   uuid.New(),
		PatientID:  uuid.New(),
		Date:       time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		SlotTime:   "09:00",
		PriceCents: 15000,
	}
}

func testEvent() *model.OutboxEvent {
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: model.EventAppointmentCreated,
		Payload:   []byte("{}"),
		Status:    string(model.OutboxStatusPending),
		CreatedAt: time.Now(),
	}
}

func TestAppointmentCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	appt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(appt.ID, appt.ClinicID, appt.DoctorID, appt.PatientID,
			"2025-06-02", "09:00", appt.PriceCents, appt.CreatedAt, appt.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), appt, testEvent()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreateDuplicateSlot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	appt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_doctor_day_slot"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), appt, testEvent())
	assert.ErrorIs(t, err, repository.ErrDuplicateSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	appt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE appointments").
		WithArgs(appt.DoctorID, appt.PatientID, "2025-06-02", "09:00",
			appt.PriceCents, appt.UpdatedAt, appt.ID, appt.ClinicID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), appt, testEvent()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdateNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	appt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), appt, testEvent())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdateDuplicateSlot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	appt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE appointments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_doctor_day_slot"})
	mock.ExpectRollback()

	err := repo.Update(context.Background(), appt, testEvent())
	assert.ErrorIs(t, err, repository.ErrDuplicateSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	id, clinicID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM appointments").
		WithArgs(id, clinicID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), id, clinicID, testEvent()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), uuid.New(), uuid.New(), testEvent())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentGetForClinic(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	appt := testAppointment()

	rows := sqlmock.NewRows([]string{
		"id", "clinic_id", "doctor_id", "patient_id",
		"date", "slot_time", "price_cents", "created_at", "updated_at",
	}).AddRow(appt.ID, appt.ClinicID, appt.DoctorID, appt.PatientID,
		appt.Date, appt.SlotTime, appt.PriceCents, appt.CreatedAt, appt.UpdatedAt)

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs(appt.ID, appt.ClinicID).
		WillReturnRows(rows)

	got, err := repo.GetForClinic(context.Background(), appt.ID, appt.ClinicID)
	require.NoError(t, err)
	assert.Equal(t, appt.ID, got.ID)
	assert.Equal(t, "09:00", got.SlotTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentGetForClinicNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetForClinic(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAppointmentListForDoctorDay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	appt := testAppointment()

	rows := sqlmock.NewRows([]string{
		"id", "clinic_id", "doctor_id", "patient_id",
		"date", "slot_time", "price_cents", "created_at", "updated_at",
	}).AddRow(appt.ID, appt.ClinicID, appt.DoctorID, appt.PatientID,
		appt.Date, appt.SlotTime, appt.PriceCents, appt.CreatedAt, appt.UpdatedAt)

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs(appt.DoctorID, "2025-06-02").
		WillReturnRows(rows)

	got, err := repo.ListForDoctorDay(context.Background(), appt.DoctorID, appt.Date)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, appt.ID, got[0].ID)
}

func TestAppointmentListWithFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	clinicID := uuid.New()
	doctorID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs(clinicID, doctorID, "2025-06-01", "2025-06-30").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	filters := &model.AppointmentFilters{
		DoctorID:  doctorID,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	got, err := repo.List(context.Background(), clinicID, filters)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
