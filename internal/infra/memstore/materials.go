package memstore

import (
	"context"

	"github.com/Spok95/inventory-tracker/internal/domain/materials"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type MaterialRepo struct{ db *db }

func (r *MaterialRepo) List(_ context.Context) ([]materials.Material, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return values(r.db.materials, func(a, b materials.Material) bool { return a.Code < b.Code }), nil
}

func (r *MaterialRepo) GetByCode(_ context.Context, code string) (*materials.Material, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.materials[code]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MaterialRepo) Create(_ context.Context, m materials.Material) (*materials.Material, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.materials[m.Code]; ok {
		return nil, apperrors.Validation("materialCode", "already exists")
	}
	m.LastUpdated = r.db.now()
	r.db.materials[m.Code] = m
	return &m, nil
}

// Update keeps the stored id and quantity.
func (r *MaterialRepo) Update(_ context.Context, m materials.Material) (*materials.Material, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	old, ok := r.db.materials[m.Code]
	if !ok {
		return nil, apperrors.NotFound("material", m.Code)
	}
	m.ID = old.ID
	m.Quantity = old.Quantity
	m.LastUpdated = r.db.now()
	r.db.materials[m.Code] = m
	return &m, nil
}

func (r *MaterialRepo) Delete(_ context.Context, code string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.materials[code]; !ok {
		return apperrors.NotFound("material", code)
	}
	delete(r.db.materials, code)
	return nil
}
