package alerts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const selectCols = `id, type, material_code, material_description, message, local_quantity, sap_quantity,
	variance, severity, created_at, acknowledged, related_id`

func scanRows(rows pgx.Rows) ([]Alert, error) {
	defer rows.Close()
	var out []Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(
			&a.ID,
			&a.Type,
			&a.MaterialCode,
			&a.MaterialDescription,
			&a.Message,
			&a.LocalQuantity,
			&a.SAPQuantity,
			&a.Variance,
			&a.Severity,
			&a.CreatedAt,
			&a.Acknowledged,
			&a.RelatedID,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) List(ctx context.Context) ([]Alert, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectCols+` FROM alerts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func (r *Repo) ListUnacknowledged(ctx context.Context) ([]Alert, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectCols+` FROM alerts WHERE NOT acknowledged ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

// Put stores a new alert. It returns false without error when an
// unacknowledged alert with the same (type, material_code) already exists;
// the partial unique index alerts_active_key enforces this.
func (r *Repo) Put(ctx context.Context, a Alert) (bool, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO alerts (id, type, material_code, material_description, message, local_quantity, sap_quantity,
			variance, severity, created_at, acknowledged, related_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (type, material_code) WHERE NOT acknowledged DO NOTHING
		RETURNING id
	`, a.ID, string(a.Type), a.MaterialCode, a.MaterialDescription, a.Message, a.LocalQuantity, a.SAPQuantity,
		a.Variance, string(a.Severity), a.CreatedAt, a.Acknowledged, a.RelatedID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repo) Acknowledge(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE alerts SET acknowledged = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("alert", id)
	}
	return nil
}

func (r *Repo) AcknowledgeAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE alerts SET acknowledged = TRUE WHERE NOT acknowledged`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("alert", id)
	}
	return nil
}

// ClearAcknowledged removes every acknowledged alert.
func (r *Repo) ClearAcknowledged(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM alerts WHERE acknowledged`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) ClearAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM alerts`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
