package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const selectCols = `id, material_code, material_description, type, quantity, unit, date, actor, reference, notes`

func scan(row pgx.Row) (*Transaction, error) {
	var t Transaction
	if err := row.Scan(
		&t.ID,
		&t.MaterialCode,
		&t.MaterialDescription,
		&t.Type,
		&t.Quantity,
		&t.Unit,
		&t.Date,
		&t.User,
		&t.Reference,
		&t.Notes,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

// applyDelta moves the material quantity by delta under the row lock taken by
// UPDATE, refusing to go below zero. It returns the material description for
// snapshotting. With allowMissing a deleted material is not an error.
func applyDelta(ctx context.Context, tx pgx.Tx, code string, delta float64, allowMissing bool) (string, error) {
	var qty float64
	var desc string
	err := tx.QueryRow(ctx, `
		UPDATE materials SET quantity = quantity + $2, last_updated = now()
		WHERE code = $1 AND quantity + $2 >= 0
		RETURNING quantity, description
	`, code, delta).Scan(&qty, &desc)
	if err == nil {
		return desc, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	var have float64
	err = tx.QueryRow(ctx, `SELECT quantity FROM materials WHERE code = $1`, code).Scan(&have)
	if errors.Is(err, pgx.ErrNoRows) {
		if allowMissing {
			return "", nil
		}
		return "", apperrors.NotFound("material", code)
	}
	if err != nil {
		return "", err
	}
	return "", apperrors.InsufficientStock(code, have, delta)
}

// Record applies the movement to the material and stores it in one transaction.
func (r *Repo) Record(ctx context.Context, t Transaction) (*Transaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	desc, err := applyDelta(ctx, tx, t.MaterialCode, t.Delta(), false)
	if err != nil {
		return nil, err
	}
	if t.MaterialDescription == "" {
		t.MaterialDescription = desc
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, material_code, material_description, type, quantity, unit, date, actor, reference, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, t.ID, t.MaterialCode, t.MaterialDescription, string(t.Type), t.Quantity, t.Unit, t.Date, t.User, t.Reference, t.Notes); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update replaces a stored movement, reversing the old delta and applying the
// new one atomically.
func (r *Repo) Update(ctx context.Context, t Transaction) (*Transaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	old, err := scan(tx.QueryRow(ctx, `SELECT `+selectCols+` FROM transactions WHERE id = $1 FOR UPDATE`, t.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("transaction", t.ID)
		}
		return nil, err
	}

	if old.MaterialCode == t.MaterialCode {
		if _, err := applyDelta(ctx, tx, t.MaterialCode, t.Delta()-old.Delta(), false); err != nil {
			return nil, err
		}
	} else {
		if _, err := applyDelta(ctx, tx, old.MaterialCode, -old.Delta(), true); err != nil {
			return nil, err
		}
		desc, err := applyDelta(ctx, tx, t.MaterialCode, t.Delta(), false)
		if err != nil {
			return nil, err
		}
		t.MaterialDescription = desc
	}
	if t.MaterialDescription == "" {
		t.MaterialDescription = old.MaterialDescription
	}

	if _, err = tx.Exec(ctx, `
		UPDATE transactions SET material_code=$2, material_description=$3, type=$4, quantity=$5,
			unit=$6, date=$7, actor=$8, reference=$9, notes=$10
		WHERE id=$1
	`, t.ID, t.MaterialCode, t.MaterialDescription, string(t.Type), t.Quantity, t.Unit, t.Date, t.User, t.Reference, t.Notes); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a movement and reverses its effect. When the material itself
// was deleted there is nothing left to reverse.
func (r *Repo) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	old, err := scan(tx.QueryRow(ctx, `SELECT `+selectCols+` FROM transactions WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("transaction", id)
		}
		return err
	}
	if _, err := applyDelta(ctx, tx, old.MaterialCode, -old.Delta(), true); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repo) Get(ctx context.Context, id string) (*Transaction, error) {
	t, err := scan(r.pool.QueryRow(ctx, `SELECT `+selectCols+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *Repo) List(ctx context.Context) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectCols+` FROM transactions ORDER BY date DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
