package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

var fixed = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(WithClock(func() time.Time { return fixed }))
}

func seed(t *testing.T, s *Store, code string, qty float64) {
	t.Helper()
	_, err := s.Materials.Create(context.Background(), materials.Material{ID: "m-" + code, Code: code, Description: "desc " + code, Unit: "pcs", Quantity: qty})
	require.NoError(t, err)
}

func qty(t *testing.T, s *Store, code string) float64 {
	t.Helper()
	m, err := s.Materials.GetByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.Quantity
}

func move(id, code string, typ inventory.MoveType, q float64) inventory.Transaction {
	return inventory.Transaction{ID: id, MaterialCode: code, Type: typ, Quantity: q, Unit: "pcs", Date: fixed}
}

func TestTransactions_ReceiveIssueAndReverse(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "X", 0)

	rec, err := s.Transactions.Record(ctx, move("t1", "X", inventory.MoveReceiving, 100))
	require.NoError(t, err)
	assert.Equal(t, "desc X", rec.MaterialDescription)

	_, err = s.Transactions.Record(ctx, move("t2", "X", inventory.MoveIssuance, 30))
	require.NoError(t, err)
	assert.Equal(t, 70.0, qty(t, s, "X"))

	require.NoError(t, s.Transactions.Delete(ctx, "t2"))
	assert.Equal(t, 100.0, qty(t, s, "X"))

	got, err := s.Transactions.Get(ctx, "t2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTransactions_InsufficientStockLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "X", 5)

	_, err := s.Transactions.Record(ctx, move("t1", "X", inventory.MoveIssuance, 6))
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.Equal(t, 5.0, qty(t, s, "X"))

	list, err := s.Transactions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransactions_UnknownMaterial(t *testing.T) {
	_, err := newStore(t).Transactions.Record(context.Background(), move("t1", "NOPE", inventory.MoveReceiving, 1))
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransactions_DeleteReversalCannotGoNegative(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "X", 0)

	_, err := s.Transactions.Record(ctx, move("t1", "X", inventory.MoveReceiving, 10))
	require.NoError(t, err)
	_, err = s.Transactions.Record(ctx, move("t2", "X", inventory.MoveIssuance, 8))
	require.NoError(t, err)

	err = s.Transactions.Delete(ctx, "t1")
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.Equal(t, 2.0, qty(t, s, "X"))
}

func TestTransactions_DeleteAfterMaterialRemoved(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "X", 0)
	_, err := s.Transactions.Record(ctx, move("t1", "X", inventory.MoveReceiving, 10))
	require.NoError(t, err)
	require.NoError(t, s.Materials.Delete(ctx, "X"))

	require.NoError(t, s.Transactions.Delete(ctx, "t1"))
}

func TestTransactions_Update(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "A", 0)
	seed(t, s, "B", 1)

	_, err := s.Transactions.Record(ctx, move("t1", "A", inventory.MoveReceiving, 10))
	require.NoError(t, err)

	t.Run("same material applies net delta", func(t *testing.T) {
		_, err := s.Transactions.Update(ctx, move("t1", "A", inventory.MoveReceiving, 25))
		require.NoError(t, err)
		assert.Equal(t, 25.0, qty(t, s, "A"))
	})

	t.Run("moving to another material", func(t *testing.T) {
		upd, err := s.Transactions.Update(ctx, move("t1", "B", inventory.MoveReceiving, 4))
		require.NoError(t, err)
		assert.Equal(t, "desc B", upd.MaterialDescription)
		assert.Equal(t, 0.0, qty(t, s, "A"))
		assert.Equal(t, 5.0, qty(t, s, "B"))
	})

	t.Run("rejected update changes nothing", func(t *testing.T) {
		_, err := s.Transactions.Update(ctx, move("t1", "A", inventory.MoveIssuance, 1))
		require.ErrorIs(t, err, apperrors.ErrInsufficientStock)
		assert.Equal(t, 0.0, qty(t, s, "A"))
		assert.Equal(t, 5.0, qty(t, s, "B"))
	})

	t.Run("missing transaction", func(t *testing.T) {
		_, err := s.Transactions.Update(ctx, move("nope", "A", inventory.MoveReceiving, 1))
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestTransactions_ConcurrentMovementsLoseNoUpdate(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "X", 0)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Transactions.Record(ctx, move(fmt.Sprintf("r%d", i), "X", inventory.MoveReceiving, 2))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, float64(2*workers), qty(t, s, "X"))
}

func TestMaterials_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "X", 1)

	_, err := s.Materials.Create(ctx, materials.Material{ID: "dup", Code: "X", Quantity: 9})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, 1.0, qty(t, s, "X"))

	m, err := s.Materials.Update(ctx, materials.Material{ID: "other", Code: "X", Description: "renamed", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "m-X", m.ID)
	assert.Equal(t, "renamed", m.Description)
	assert.Equal(t, 1.0, m.Quantity)
	assert.Equal(t, fixed, m.LastUpdated)

	_, err = s.Materials.Update(ctx, materials.Material{Code: "missing"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.ErrorIs(t, s.Materials.Delete(ctx, "missing"), apperrors.ErrNotFound)
}

func TestAlerts_PutDedup(t *testing.T) {
	ctx := context.Background()
	r := newStore(t).Alerts
	a := alerts.Alert{ID: "a1", Type: alerts.TypeLowStock, MaterialCode: "X", CreatedAt: fixed}

	ok, err := r.Put(ctx, a)
	require.NoError(t, err)
	assert.True(t, ok)

	a.ID = "a2"
	ok, err = r.Put(ctx, a)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Acknowledge(ctx, "a1"))
	ok, err = r.Put(ctx, a)
	require.NoError(t, err)
	assert.True(t, ok)

	pending, err := r.ListUnacknowledged(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "a2", pending[0].ID)
}

func TestAlerts_BulkOperations(t *testing.T) {
	ctx := context.Background()
	r := newStore(t).Alerts
	for i, code := range []string{"A", "B", "C"} {
		_, err := r.Put(ctx, alerts.Alert{ID: fmt.Sprintf("a%d", i), Type: alerts.TypeMismatch, MaterialCode: code, CreatedAt: fixed})
		require.NoError(t, err)
	}

	require.NoError(t, r.Acknowledge(ctx, "a0"))
	n, err := r.ClearAcknowledged(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = r.AcknowledgeAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, r.Delete(ctx, "a1"))
	require.ErrorIs(t, r.Delete(ctx, "a1"), apperrors.ErrNotFound)
	require.ErrorIs(t, r.Acknowledge(ctx, "a1"), apperrors.ErrNotFound)

	n, err = r.ClearAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestDefects_UpdateOnlyTouchesStatus(t *testing.T) {
	ctx := context.Background()
	r := newStore(t).Defects
	_, err := r.Create(ctx, defects.Defect{ID: "d1", MaterialCode: "X", Quantity: 2, Status: defects.StatusOpen})
	require.NoError(t, err)

	upd, err := r.Update(ctx, defects.Defect{ID: "d1", Quantity: 99, Status: defects.StatusResolved, ResolutionNotes: "replaced"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, upd.Quantity)
	assert.Equal(t, defects.StatusResolved, upd.Status)

	_, err = r.Update(ctx, defects.Defect{ID: "nope"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUsers_UpsertKeepsAdmin(t *testing.T) {
	ctx := context.Background()
	r := newStore(t).Users
	_, err := r.Upsert(ctx, users.User{ID: "u1", TelegramID: 42, Username: "boss", Role: users.RoleAdmin})
	require.NoError(t, err)

	u, err := r.Upsert(ctx, users.User{ID: "u2", TelegramID: 42, Username: "boss", Role: users.RoleViewer})
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, users.RoleAdmin, u.Role)

	got, err := r.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "boss", got.Username)

	_, err = r.SetRole(ctx, "missing", users.RoleStaff)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
