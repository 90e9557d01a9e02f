package materials

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const selectCols = `id, code, description, category, unit, quantity, location, last_updated, sap_quantity, reorder_threshold`

func scan(row pgx.Row) (*Material, error) {
	var m Material
	if err := row.Scan(
		&m.ID,
		&m.Code,
		&m.Description,
		&m.Category,
		&m.Unit,
		&m.Quantity,
		&m.Location,
		&m.LastUpdated,
		&m.SAPQuantity,
		&m.ReorderThreshold,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) List(ctx context.Context) ([]Material, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectCols+` FROM materials ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// GetByCode returns nil, nil when the code is unknown.
func (r *Repo) GetByCode(ctx context.Context, code string) (*Material, error) {
	m, err := scan(r.pool.QueryRow(ctx, `SELECT `+selectCols+` FROM materials WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// Create inserts a new material with its opening quantity. A code that is
// already taken is a validation error.
func (r *Repo) Create(ctx context.Context, m Material) (*Material, error) {
	out, err := scan(r.pool.QueryRow(ctx, `
		INSERT INTO materials (id, code, description, category, unit, quantity, location, last_updated, sap_quantity, reorder_threshold)
		VALUES ($1,$2,$3,$4,$5,$6,$7,now(),$8,$9)
		ON CONFLICT (code) DO NOTHING
		RETURNING `+selectCols,
		m.ID, m.Code, m.Description, m.Category, m.Unit, m.Quantity, m.Location, m.SAPQuantity, m.ReorderThreshold,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Validation("materialCode", "already exists")
	}
	return out, err
}

// Update rewrites the descriptive fields of a material. The on-hand quantity
// is owned by the transaction log and is never written here.
func (r *Repo) Update(ctx context.Context, m Material) (*Material, error) {
	out, err := scan(r.pool.QueryRow(ctx, `
		UPDATE materials SET
			description       = $2,
			category          = $3,
			unit              = $4,
			location          = $5,
			sap_quantity      = $6,
			reorder_threshold = $7,
			last_updated      = now()
		WHERE code = $1
		RETURNING `+selectCols,
		m.Code, m.Description, m.Category, m.Unit, m.Location, m.SAPQuantity, m.ReorderThreshold,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("material", m.Code)
	}
	return out, err
}

// Delete removes the material row only; transactions, defects and alerts
// reference it by code and stay as history.
func (r *Repo) Delete(ctx context.Context, code string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM materials WHERE code = $1`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("material", code)
	}
	return nil
}
