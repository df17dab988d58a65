package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agendaclinic/scheduling-api/internal/model"
)

func (r *doctorRepository) GetForClinic(ctx context.Context, id, clinicID uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT id, clinic_id, name, specialty, appointment_price_cents,
			   available_from_weekday, available_to_weekday,
			   available_from_time, available_to_time,
			   status, created_at, updated_at
		FROM doctors
		WHERE id = $1 AND clinic_id = $2
	`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id, clinicID); err != nil {
		return nil, mapError(err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	query := `
		SELECT id, clinic_id, name, specialty, appointment_price_cents,
			   available_from_weekday, available_to_weekday,
			   available_from_time, available_to_time,
			   status, created_at, updated_at
		FROM doctors
		WHERE clinic_id = $1
		ORDER BY name ASC
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
