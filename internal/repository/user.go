package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kmansoor/sims-backend/internal/entity"
)

func (r *Repository) UserByEmail(ctx context.Context, email string) (entity.User, error) {
	const q = `SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = $1`

	var u entity.User

	err := r.db.QueryRow(ctx, q, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, entity.ErrNotFound
		}

		return entity.User{}, err
	}

	return u, nil
}
