package memstore

import (
	"context"

	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type DefectRepo struct{ db *db }

func (r *DefectRepo) Create(_ context.Context, d defects.Defect) (*defects.Defect, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.defects[d.ID] = d
	return &d, nil
}

// Update only rewrites status and resolution notes.
func (r *DefectRepo) Update(_ context.Context, d defects.Defect) (*defects.Defect, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.db.defects[d.ID]
	if !ok {
		return nil, apperrors.NotFound("defect", d.ID)
	}
	cur.Status = d.Status
	cur.ResolutionNotes = d.ResolutionNotes
	r.db.defects[d.ID] = cur
	return &cur, nil
}

func (r *DefectRepo) Get(_ context.Context, id string) (*defects.Defect, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.defects[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *DefectRepo) List(_ context.Context) ([]defects.Defect, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return values(r.db.defects, func(a, b defects.Defect) bool {
		if !a.ReportedDate.Equal(b.ReportedDate) {
			return a.ReportedDate.After(b.ReportedDate)
		}
		return a.ID < b.ID
	}), nil
}

func (r *DefectRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.defects[id]; !ok {
		return apperrors.NotFound("defect", id)
	}
	delete(r.db.defects, id)
	return nil
}
