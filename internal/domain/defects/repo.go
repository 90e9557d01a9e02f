package defects

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const selectCols = `id, material_code, material_description, defect_type, quantity, unit, severity,
	description, reported_by, reported_date, status, resolution_notes`

func scan(row pgx.Row) (*Defect, error) {
	var d Defect
	if err := row.Scan(
		&d.ID,
		&d.MaterialCode,
		&d.MaterialDescription,
		&d.DefectType,
		&d.Quantity,
		&d.Unit,
		&d.Severity,
		&d.Description,
		&d.ReportedBy,
		&d.ReportedDate,
		&d.Status,
		&d.ResolutionNotes,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repo) Create(ctx context.Context, d Defect) (*Defect, error) {
	return scan(r.pool.QueryRow(ctx, `
		INSERT INTO defects (id, material_code, material_description, defect_type, quantity, unit, severity,
			description, reported_by, reported_date, status, resolution_notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING `+selectCols,
		d.ID, d.MaterialCode, d.MaterialDescription, d.DefectType, d.Quantity, d.Unit, string(d.Severity),
		d.Description, d.ReportedBy, d.ReportedDate, string(d.Status), d.ResolutionNotes,
	))
}

// Update rewrites the mutable part of a defect: status and resolution notes.
func (r *Repo) Update(ctx context.Context, d Defect) (*Defect, error) {
	out, err := scan(r.pool.QueryRow(ctx, `
		UPDATE defects SET status=$2, resolution_notes=$3
		WHERE id=$1
		RETURNING `+selectCols,
		d.ID, string(d.Status), d.ResolutionNotes,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("defect", d.ID)
	}
	return out, err
}

func (r *Repo) Get(ctx context.Context, id string) (*Defect, error) {
	d, err := scan(r.pool.QueryRow(ctx, `SELECT `+selectCols+` FROM defects WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

func (r *Repo) List(ctx context.Context) ([]Defect, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectCols+` FROM defects ORDER BY reported_date DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Defect
	for rows.Next() {
		d, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM defects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("defect", id)
	}
	return nil
}
