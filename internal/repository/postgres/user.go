package postgres

import (
	"context"

	"github.com/agendaclinic/scheduling-api/internal/model"
)

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, clinic_id, email, name, password_hash, status, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}
