package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const selectCols = `id, telegram_id, username, full_name, email, role, created_at, updated_at`

func scan(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FullName, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByTelegramID(ctx context.Context, tgID int64) (*User, error) {
	u, err := scan(r.pool.QueryRow(ctx, `SELECT `+selectCols+` FROM users WHERE telegram_id = $1`, tgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectCols+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// Upsert by username. An existing admin keeps the admin role.
func (r *Repo) Upsert(ctx context.Context, u User) (*User, error) {
	return scan(r.pool.QueryRow(ctx, `
		INSERT INTO users (id, telegram_id, username, full_name, email, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (username)
		DO UPDATE SET
			telegram_id = EXCLUDED.telegram_id,
			full_name   = EXCLUDED.full_name,
			email       = EXCLUDED.email,
			role        = CASE WHEN users.role = 'admin' THEN users.role ELSE EXCLUDED.role END,
			updated_at  = now()
		RETURNING `+selectCols,
		u.ID, u.TelegramID, u.Username, u.FullName, u.Email, string(u.Role),
	))
}

func (r *Repo) SetRole(ctx context.Context, id string, role Role) (*User, error) {
	u, err := scan(r.pool.QueryRow(ctx, `
		UPDATE users SET role=$2, updated_at=now() WHERE id=$1
		RETURNING `+selectCols, id, string(role)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("user", id)
	}
	return u, err
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("user", id)
	}
	return nil
}
