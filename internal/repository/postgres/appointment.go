package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/agendaclinic/scheduling-api/internal/model"
	"github.com/agendaclinic/scheduling-api/internal/repository"
)

const dateLayout = "2006-01-02"

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO appointments (
				id, clinic_id, doctor_id, patient_id,
				date, slot_time, price_cents, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := tx.ExecContext(ctx, query,
			appt.ID,
			appt.ClinicID,
			appt.DoctorID,
			appt.PatientID,
			appt.Date.Format(dateLayout),
			appt.SlotTime,
			appt.PriceCents,
			appt.CreatedAt,
			appt.UpdatedAt,
		)
		if err != nil {
			return mapError(err)
		}
		return insertOutboxEvent(ctx, tx, event)
	})
}

func (r *appointmentRepository) Update(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE appointments
			SET doctor_id = $1, patient_id = $2, date = $3,
				slot_time = $4, price_cents = $5, updated_at = $6
			WHERE id = $7 AND clinic_id = $8
		`
		result, err := tx.ExecContext(ctx, query,
			appt.DoctorID,
			appt.PatientID,
			appt.Date.Format(dateLayout),
			appt.SlotTime,
			appt.PriceCents,
			appt.UpdatedAt,
			appt.ID,
			appt.ClinicID,
		)
		if err != nil {
			return mapError(err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return repository.ErrNotFound
		}
		return insertOutboxEvent(ctx, tx, event)
	})
}

func (r *appointmentRepository) Delete(ctx context.Context, id, clinicID uuid.UUID, event *model.OutboxEvent) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `DELETE FROM appointments WHERE id = $1 AND clinic_id = $2`
		result, err := tx.ExecContext(ctx, query, id, clinicID)
		if err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return repository.ErrNotFound
		}
		return insertOutboxEvent(ctx, tx, event)
	})
}

func (r *appointmentRepository) GetForClinic(ctx context.Context, id, clinicID uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, clinic_id, doctor_id, patient_id,
			   date, slot_time, price_cents, created_at, updated_at
		FROM appointments
		WHERE id = $1 AND clinic_id = $2
	`
	var appt model.Appointment
	if err := r.db.GetContext(ctx, &appt, query, id, clinicID); err != nil {
		return nil, mapError(err)
	}
	return &appt, nil
}

func (r *appointmentRepository) ListForDoctorDay(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, clinic_id, doctor_id, patient_id,
			   date, slot_time, price_cents, created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1 AND date = $2
		ORDER BY slot_time ASC
	`
	var appts []*model.Appointment
	if err := r.db.SelectContext(ctx, &appts, query, doctorID, date.Format(dateLayout)); err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appts, nil
}

func (r *appointmentRepository) List(ctx context.Context, clinicID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT id, clinic_id, doctor_id, patient_id,
			   date, slot_time, price_cents, created_at, updated_at
		FROM appointments
		WHERE clinic_id = $1
	`
	args := []interface{}{clinicID}
	argCount := 2

	if filters != nil {
		if filters.DoctorID != uuid.Nil {
			query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
			args = append(args, filters.DoctorID)
			argCount++
		}
		if filters.PatientID != uuid.Nil {
			query += fmt.Sprintf(" AND patient_id = $%d", argCount)
			args = append(args, filters.PatientID)
			argCount++
		}
		if !filters.StartDate.IsZero() {
			query += fmt.Sprintf(" AND date >= $%d", argCount)
			args = append(args, filters.StartDate.Format(dateLayout))
			argCount++
		}
		if !filters.EndDate.IsZero() {
			query += fmt.Sprintf(" AND date <= $%d", argCount)
			args = append(args, filters.EndDate.Format(dateLayout))
			argCount++
		}
	}

	query += " ORDER BY date ASC, slot_time ASC"

	var appts []*model.Appointment
	if err := r.db.SelectContext(ctx, &appts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}
