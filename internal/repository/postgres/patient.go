package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agendaclinic/scheduling-api/internal/model"
)

func (r *patientRepository) GetForClinic(ctx context.Context, id, clinicID uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, clinic_id, name, email, phone, status, created_at, updated_at
		FROM patients
		WHERE id = $1 AND clinic_id = $2
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id, clinicID); err != nil {
		return nil, mapError(err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Patient, error) {
	query := `
		SELECT id, clinic_id, name, email, phone, status, created_at, updated_at
		FROM patients
		WHERE clinic_id = $1
		ORDER BY name ASC
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
