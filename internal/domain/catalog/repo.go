package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// UpsertCategory creates the category or updates its unit cost.
func (r *Repo) UpsertCategory(ctx context.Context, name string, unitCost float64) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, unit_cost) VALUES ($1,$2)
		ON CONFLICT (name) DO UPDATE SET unit_cost = EXCLUDED.unit_cost
		RETURNING id, name, unit_cost, active, created_at
	`, name, unitCost)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.UnitCost, &c.Active, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, unit_cost, active, created_at
		FROM categories WHERE name = $1
	`, name)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.UnitCost, &c.Active, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, unit_cost, active, created_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.UnitCost, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) SetCategoryActive(ctx context.Context, name string, active bool) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE categories SET active=$2 WHERE name=$1
		RETURNING id, name, unit_cost, active, created_at
	`, name, active)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.UnitCost, &c.Active, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
