package memstore

import (
	"context"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type AlertRepo struct{ db *db }

func newestFirst(a, b alerts.Alert) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

func (r *AlertRepo) List(_ context.Context) ([]alerts.Alert, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return values(r.db.alerts, newestFirst), nil
}

func (r *AlertRepo) ListUnacknowledged(_ context.Context) ([]alerts.Alert, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return alerts.Unacknowledged(values(r.db.alerts, newestFirst)), nil
}

// Put refuses a second unacknowledged alert for the same dedup key.
func (r *AlertRepo) Put(_ context.Context, a alerts.Alert) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if !a.Acknowledged {
		key := a.DedupKey()
		for _, cur := range r.db.alerts {
			if !cur.Acknowledged && cur.DedupKey() == key {
				return false, nil
			}
		}
	}
	r.db.alerts[a.ID] = a
	return true, nil
}

func (r *AlertRepo) Acknowledge(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.alerts[id]
	if !ok {
		return apperrors.NotFound("alert", id)
	}
	a.Acknowledged = true
	r.db.alerts[id] = a
	return nil
}

func (r *AlertRepo) AcknowledgeAll(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, a := range r.db.alerts {
		if !a.Acknowledged {
			a.Acknowledged = true
			r.db.alerts[id] = a
			n++
		}
	}
	return n, nil
}

func (r *AlertRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.alerts[id]; !ok {
		return apperrors.NotFound("alert", id)
	}
	delete(r.db.alerts, id)
	return nil
}

func (r *AlertRepo) ClearAcknowledged(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, a := range r.db.alerts {
		if a.Acknowledged {
			delete(r.db.alerts, id)
			n++
		}
	}
	return n, nil
}

func (r *AlertRepo) ClearAll(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := int64(len(r.db.alerts))
	clear(r.db.alerts)
	return n, nil
}
