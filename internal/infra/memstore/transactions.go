package memstore

import (
	"context"

	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type TransactionRepo struct{ db *db }

// applyDelta must be called with the lock held. It returns the material
// description for snapshotting.
func (d *db) applyDelta(code string, delta float64, allowMissing bool) (string, error) {
	m, ok := d.materials[code]
	if !ok {
		if allowMissing {
			return "", nil
		}
		return "", apperrors.NotFound("material", code)
	}
	if m.Quantity+delta < 0 {
		return "", apperrors.InsufficientStock(code, m.Quantity, delta)
	}
	m.Quantity += delta
	m.LastUpdated = d.now()
	d.materials[code] = m
	return m.Description, nil
}

func (r *TransactionRepo) Record(_ context.Context, t inventory.Transaction) (*inventory.Transaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	desc, err := r.db.applyDelta(t.MaterialCode, t.Delta(), false)
	if err != nil {
		return nil, err
	}
	if t.MaterialDescription == "" {
		t.MaterialDescription = desc
	}
	r.db.transactions[t.ID] = t
	return &t, nil
}

// Update reverses the stored movement and applies t. Nothing changes when
// either step fails.
func (r *TransactionRepo) Update(_ context.Context, t inventory.Transaction) (*inventory.Transaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	old, ok := r.db.transactions[t.ID]
	if !ok {
		return nil, apperrors.NotFound("transaction", t.ID)
	}

	if old.MaterialCode == t.MaterialCode {
		if _, err := r.db.applyDelta(t.MaterialCode, t.Delta()-old.Delta(), false); err != nil {
			return nil, err
		}
	} else {
		if _, ok := r.db.materials[t.MaterialCode]; !ok {
			return nil, apperrors.NotFound("material", t.MaterialCode)
		}
		// check the new side before touching the old one
		if m := r.db.materials[t.MaterialCode]; m.Quantity+t.Delta() < 0 {
			return nil, apperrors.InsufficientStock(t.MaterialCode, m.Quantity, t.Delta())
		}
		if _, err := r.db.applyDelta(old.MaterialCode, -old.Delta(), true); err != nil {
			return nil, err
		}
		desc, err := r.db.applyDelta(t.MaterialCode, t.Delta(), false)
		if err != nil {
			return nil, err
		}
		t.MaterialDescription = desc
	}
	if t.MaterialDescription == "" {
		t.MaterialDescription = old.MaterialDescription
	}
	r.db.transactions[t.ID] = t
	return &t, nil
}

func (r *TransactionRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	old, ok := r.db.transactions[id]
	if !ok {
		return apperrors.NotFound("transaction", id)
	}
	if _, err := r.db.applyDelta(old.MaterialCode, -old.Delta(), true); err != nil {
		return err
	}
	delete(r.db.transactions, id)
	return nil
}

func (r *TransactionRepo) Get(_ context.Context, id string) (*inventory.Transaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.transactions[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// List returns the newest movements first.
func (r *TransactionRepo) List(_ context.Context) ([]inventory.Transaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return values(r.db.transactions, func(a, b inventory.Transaction) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.ID < b.ID
	}), nil
}
