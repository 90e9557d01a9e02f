package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/inventory-tracker/internal/analytics"
	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/infra/memstore"
	"github.com/Spok95/inventory-tracker/internal/infra/metrics"
	"github.com/Spok95/inventory-tracker/internal/notify"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
	"github.com/Spok95/inventory-tracker/internal/rules"
)

var (
	_ MaterialStore    = (*memstore.MaterialRepo)(nil)
	_ TransactionStore = (*memstore.TransactionRepo)(nil)
	_ DefectStore      = (*memstore.DefectRepo)(nil)
	_ AlertStore       = (*memstore.AlertRepo)(nil)
	_ UserStore        = (*memstore.UserRepo)(nil)
	_ CategoryStore    = (*memstore.CategoryRepo)(nil)
)

var (
	clock   = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	manager = Actor{Name: "mia", Role: users.RoleManager}
	staff   = Actor{Name: "sam", Role: users.RoleStaff}
	viewer  = Actor{Name: "vic", Role: users.RoleViewer}
)

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Notify(_ context.Context, e notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Kind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

type fixture struct {
	svc     *Services
	mem     *memstore.Store
	stores  Stores
	metrics *metrics.Metrics
	sink    *recorder
}

func newFixture(t *testing.T, mutate ...func(*Stores)) *fixture {
	t.Helper()
	mem := memstore.New(memstore.WithClock(func() time.Time { return clock }))
	stores := Stores{
		Materials:    mem.Materials,
		Transactions: mem.Transactions,
		Defects:      mem.Defects,
		Alerts:       mem.Alerts,
		Users:        mem.Users,
		Categories:   mem.Categories,
	}
	for _, m := range mutate {
		m(&stores)
	}

	var mu sync.Mutex
	n := 0
	ids := func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
	m := metrics.New(prometheus.NewRegistry())
	sink := &recorder{}
	svc := New(Deps{
		Stores:   stores,
		Engine:   rules.NewEngine(rules.DefaultThresholds(), rules.WithClock(func() time.Time { return clock }), rules.WithIDs(ids)),
		Notifier: sink,
		Metrics:  m,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Settings: Settings{
			Timeout:    time.Second,
			Costs:      analytics.NewCostTable(map[string]float64{"bolts": 2}, 10),
			LossFactor: analytics.DefaultLossFactor,
			TrendDays:  7,
			Location:   time.UTC,
		},
		Now:   func() time.Time { return clock },
		NewID: ids,
	})
	return &fixture{svc: svc, mem: mem, stores: stores, metrics: m, sink: sink}
}

func (f *fixture) material(t *testing.T, code string, qty float64, sap *float64) {
	t.Helper()
	_, err := f.mem.Materials.Create(context.Background(), materials.Material{
		ID: "m-" + code, Code: code, Description: "desc " + code, Category: "Bolts", Unit: "pcs", Quantity: qty, SAPQuantity: sap,
	})
	require.NoError(t, err)
}

func (f *fixture) qty(t *testing.T, code string) float64 {
	t.Helper()
	m, err := f.svc.Inventory.GetMaterial(context.Background(), code)
	require.NoError(t, err)
	return m.Quantity
}

func TestInventory_ReceiveIssueDeleteScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "X", 0, nil)

	rec, err := f.svc.Inventory.Receive(ctx, staff, Movement{MaterialCode: "X", Quantity: 100})
	require.NoError(t, err)
	assert.Equal(t, "desc X", rec.MaterialDescription)
	assert.Equal(t, "pcs", rec.Unit)
	assert.Equal(t, "sam", rec.User)
	assert.Equal(t, clock, rec.Date)

	iss, err := f.svc.Inventory.Issue(ctx, staff, Movement{MaterialCode: "X", Quantity: 30})
	require.NoError(t, err)
	assert.Equal(t, 70.0, f.qty(t, "X"))

	require.NoError(t, f.svc.Inventory.DeleteTransaction(ctx, manager, iss.ID))
	assert.Equal(t, 100.0, f.qty(t, "X"))

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Transactions.WithLabelValues("receiving")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Transactions.WithLabelValues("issuance")))
}

func TestInventory_MovementErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "X", 5, nil)

	tests := []struct {
		name  string
		actor Actor
		mv    Movement
		issue bool
		want  error
	}{
		{"viewer cannot move stock", viewer, Movement{MaterialCode: "X", Quantity: 1}, false, apperrors.ErrForbidden},
		{"zero quantity", staff, Movement{MaterialCode: "X"}, false, apperrors.ErrValidation},
		{"negative quantity", staff, Movement{MaterialCode: "X", Quantity: -3}, false, apperrors.ErrValidation},
		{"missing code", staff, Movement{Quantity: 1}, false, apperrors.ErrValidation},
		{"unknown material", staff, Movement{MaterialCode: "NOPE", Quantity: 1}, false, apperrors.ErrNotFound},
		{"more than on hand", staff, Movement{MaterialCode: "X", Quantity: 6}, true, apperrors.ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.issue {
				_, err = f.svc.Inventory.Issue(ctx, tt.actor, tt.mv)
			} else {
				_, err = f.svc.Inventory.Receive(ctx, tt.actor, tt.mv)
			}
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, 5.0, f.qty(t, "X"))
		})
	}
}

func TestInventory_StaffCannotDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "X", 0, nil)
	rec, err := f.svc.Inventory.Receive(ctx, staff, Movement{MaterialCode: "X", Quantity: 3})
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.Inventory.DeleteTransaction(ctx, staff, rec.ID), apperrors.ErrForbidden)
	require.ErrorIs(t, f.svc.Inventory.DeleteMaterial(ctx, staff, "X"), apperrors.ErrForbidden)
}

func TestInventory_UpdateTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "X", 0, nil)
	rec, err := f.svc.Inventory.Receive(ctx, staff, Movement{MaterialCode: "X", Quantity: 100})
	require.NoError(t, err)

	upd, err := f.svc.Inventory.UpdateTransaction(ctx, staff, rec.ID, inventory.MoveReceiving, Movement{MaterialCode: "X", Quantity: 40})
	require.NoError(t, err)
	assert.Equal(t, rec.ID, upd.ID)
	assert.Equal(t, 40.0, f.qty(t, "X"))

	_, err = f.svc.Inventory.UpdateTransaction(ctx, staff, rec.ID, inventory.MoveIssuance, Movement{MaterialCode: "X", Quantity: 1})
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.Equal(t, 40.0, f.qty(t, "X"))

	_, err = f.svc.Inventory.UpdateTransaction(ctx, staff, rec.ID, "transfer", Movement{MaterialCode: "X", Quantity: 1})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Inventory.UpdateTransaction(ctx, staff, "missing", inventory.MoveReceiving, Movement{MaterialCode: "X", Quantity: 1})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInventory_UpdateTransactionKeepsDateAndRecorder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "X", 0, nil)
	received := clock.AddDate(0, 0, -40)
	rec, err := f.svc.Inventory.Receive(ctx, staff, Movement{MaterialCode: "X", Quantity: 10, Date: received})
	require.NoError(t, err)

	upd, err := f.svc.Inventory.UpdateTransaction(ctx, manager, rec.ID, inventory.MoveReceiving, Movement{MaterialCode: "X", Quantity: 12})
	require.NoError(t, err)
	assert.True(t, received.Equal(upd.Date))
	assert.Equal(t, staff.Name, upd.User)

	redated := clock.AddDate(0, 0, -2)
	upd, err = f.svc.Inventory.UpdateTransaction(ctx, manager, rec.ID, inventory.MoveReceiving, Movement{MaterialCode: "X", Quantity: 12, Date: redated})
	require.NoError(t, err)
	assert.True(t, redated.Equal(upd.Date))
	assert.Equal(t, staff.Name, upd.User)
}

func TestInventory_DescriptionSnapshotsSurviveEdits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "X", 0, nil)
	rec, err := f.svc.Inventory.Receive(ctx, staff, Movement{MaterialCode: "X", Quantity: 1})
	require.NoError(t, err)

	_, err = f.svc.Inventory.UpdateMaterial(ctx, manager, "X", materials.Material{Description: "renamed", Unit: "pcs", Quantity: 1})
	require.NoError(t, err)

	got, err := f.svc.Inventory.GetTransaction(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "desc X", got.MaterialDescription)

	got, err = f.svc.Inventory.UpdateTransaction(ctx, manager, rec.ID, inventory.MoveReceiving, Movement{MaterialCode: "X", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "desc X", got.MaterialDescription)
}

func TestInventory_MaterialEditKeepsOnHandQuantity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Inventory.CreateMaterial(ctx, manager, materials.Material{Code: "X", Description: "old", Unit: "pcs"})
	require.NoError(t, err)
	rec, err := f.svc.Inventory.Receive(ctx, staff, Movement{MaterialCode: "X", Quantity: 100})
	require.NoError(t, err)

	tests := []struct {
		name string
		edit materials.Material
	}{
		{"quantity omitted", materials.Material{Description: "new", Unit: "pcs"}},
		{"stale quantity", materials.Material{Description: "newer", Unit: "pcs", Quantity: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := f.svc.Inventory.UpdateMaterial(ctx, manager, "X", tt.edit)
			require.NoError(t, err)
			assert.Equal(t, tt.edit.Description, m.Description)
			assert.Equal(t, 100.0, m.Quantity)
			assert.Equal(t, 100.0, f.qty(t, "X"))
		})
	}

	require.NoError(t, f.svc.Inventory.DeleteTransaction(ctx, manager, rec.ID))
	assert.Equal(t, 0.0, f.qty(t, "X"))
}

func TestInventory_ConcurrentCreateKeepsFirstMaterial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created []*materials.Material
		dupes   int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := f.svc.Inventory.CreateMaterial(ctx, staff, materials.Material{
				Code: "N1", Description: fmt.Sprintf("nut %d", i), Unit: "pcs", Quantity: float64(20 + i),
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				dupes++
				return
			}
			created = append(created, m)
		}(i)
	}
	wg.Wait()

	require.Len(t, created, 1)
	assert.Equal(t, workers-1, dupes)
	got, err := f.svc.Inventory.GetMaterial(ctx, "N1")
	require.NoError(t, err)
	assert.Equal(t, created[0].Description, got.Description)
	assert.Equal(t, created[0].Quantity, got.Quantity)
}

func TestInventory_CreateMaterial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	m, err := f.svc.Inventory.CreateMaterial(ctx, staff, materials.Material{Code: " N1 ", Description: "Nut", Unit: "pcs", Quantity: 50})
	require.NoError(t, err)
	assert.Equal(t, "N1", m.Code)
	assert.NotEmpty(t, m.ID)

	_, err = f.svc.Inventory.CreateMaterial(ctx, staff, materials.Material{Code: "N1", Quantity: 1})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Inventory.CreateMaterial(ctx, staff, materials.Material{Code: "N2", Quantity: -1})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Inventory.UpdateMaterial(ctx, staff, "MISSING", materials.Material{Quantity: 1})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInventory_MovementRechecksAlerts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "X", 20, nil)

	_, err := f.svc.Inventory.Issue(ctx, staff, Movement{MaterialCode: "X", Quantity: 12})
	require.NoError(t, err)

	pending, err := f.svc.Alerts.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, alerts.TypeLowStock, pending[0].Type)
	assert.Equal(t, []notify.Kind{notify.KindTransaction, notify.KindAlert}, f.sink.kinds())
}

func TestAlerts_CheckScenarioAndDedup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "X1", 150, materials.Float(100))
	f.material(t, "X2", 8, nil)
	f.material(t, "X4", 400, materials.Float(400))

	first, err := f.svc.Alerts.Check(ctx)
	require.NoError(t, err)
	require.Len(t, first.Created, 2)
	assert.Empty(t, first.Skipped)

	byKey := map[string]alerts.Alert{}
	for _, a := range first.Created {
		byKey[a.DedupKey()] = a
	}
	assert.Equal(t, alerts.SeverityCritical, byKey["mismatch-X1"].Severity)
	assert.Equal(t, alerts.SeverityWarning, byKey["low-stock-X2"].Severity)

	second, err := f.svc.Alerts.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Len(t, second.Skipped, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AlertsCreated.WithLabelValues("mismatch", "critical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AlertsSkipped.WithLabelValues("low-stock")))

	// acknowledging frees the key for the next pass
	require.NoError(t, f.svc.Alerts.Acknowledge(ctx, manager, byKey["low-stock-X2"].ID))
	third, err := f.svc.Alerts.Check(ctx)
	require.NoError(t, err)
	require.Len(t, third.Created, 1)
	assert.Equal(t, "low-stock-X2", third.Created[0].DedupKey())
}

type flakyAlerts struct {
	*memstore.AlertRepo
	failCode string
	racing   string
}

func (f flakyAlerts) Put(ctx context.Context, a alerts.Alert) (bool, error) {
	switch a.MaterialCode {
	case f.failCode:
		return false, errors.New("connection reset")
	case f.racing:
		return false, nil
	}
	return f.AlertRepo.Put(ctx, a)
}

func TestAlerts_CheckPersistsIndependently(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(s *Stores) {
		s.Alerts = flakyAlerts{AlertRepo: s.Alerts.(*memstore.AlertRepo), failCode: "BAD", racing: "RACE"}
	})
	f.material(t, "A", 3, nil)
	f.material(t, "BAD", 4, nil)
	f.material(t, "RACE", 6, nil)

	res, err := f.svc.Alerts.Check(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Contains(t, err.Error(), "connection reset")

	require.Len(t, res.Created, 1)
	assert.Equal(t, "A", res.Created[0].MaterialCode)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "BAD", res.Failed[0].MaterialCode)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "low-stock-RACE", res.Skipped[0].Key)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AlertPersistFailed.WithLabelValues("low-stock")))
	// only persisted alerts are announced
	assert.Equal(t, []notify.Kind{notify.KindAlert}, f.sink.kinds())
}

func TestAlerts_ManagementRequiresRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "X", 3, nil)
	res, err := f.svc.Alerts.Check(ctx)
	require.NoError(t, err)
	id := res.Created[0].ID

	require.ErrorIs(t, f.svc.Alerts.Acknowledge(ctx, staff, id), apperrors.ErrForbidden)
	_, err = f.svc.Alerts.ClearAll(ctx, viewer)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	require.ErrorIs(t, f.svc.Alerts.Acknowledge(ctx, manager, "missing"), apperrors.ErrNotFound)

	n, err := f.svc.Alerts.AcknowledgeAll(ctx, manager)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = f.svc.Alerts.ClearAcknowledged(ctx, manager)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestInventory_ReportDefect(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "X", 500, nil)

	d, err := f.svc.Inventory.ReportDefect(ctx, staff, defects.Defect{
		MaterialCode: "X", DefectType: "corrosion", Quantity: 4, Severity: defects.SeverityCritical,
	})
	require.NoError(t, err)
	assert.Equal(t, defects.StatusOpen, d.Status)
	assert.Equal(t, "desc X", d.MaterialDescription)
	assert.Equal(t, "sam", d.ReportedBy)
	assert.Equal(t, clock, d.ReportedDate)

	pending, err := f.svc.Alerts.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, alerts.TypeDefect, pending[0].Type)
	assert.Equal(t, d.ID, pending[0].RelatedID)
	assert.Equal(t, alerts.SeverityCritical, pending[0].Severity)

	_, err = f.svc.Inventory.UpdateDefectStatus(ctx, staff, d.ID, defects.StatusResolved, "")
	require.ErrorIs(t, err, apperrors.ErrValidation)

	res, err := f.svc.Inventory.UpdateDefectStatus(ctx, staff, d.ID, defects.StatusResolved, "scrapped")
	require.NoError(t, err)
	assert.Equal(t, "scrapped", res.ResolutionNotes)

	_, err = f.svc.Inventory.ReportDefect(ctx, staff, defects.Defect{MaterialCode: "NOPE", Quantity: 1, Severity: defects.SeverityLow})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAnalytics_Dashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "X", 0, nil)
	_, err := f.svc.Inventory.Receive(ctx, staff, Movement{MaterialCode: "X", Quantity: 100})
	require.NoError(t, err)
	_, err = f.svc.Inventory.Issue(ctx, staff, Movement{MaterialCode: "X", Quantity: 30})
	require.NoError(t, err)

	sum, err := f.svc.Analytics.Dashboard(ctx, viewer, "7d")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Materials)
	assert.Equal(t, analytics.TypeCounts{Receiving: 1, Issuance: 1, Total: 2}, sum.Transactions)
	assert.Equal(t, "140", sum.InventoryValue.String())
	require.Len(t, sum.Trend, 7)
	assert.Equal(t, 1, sum.Trend[6].Receiving)

	_, err = f.svc.Analytics.SetUnitCost(ctx, manager, "BOLTS", 3)
	require.NoError(t, err)
	sum, err = f.svc.Analytics.Dashboard(ctx, viewer, "all")
	require.NoError(t, err)
	assert.Equal(t, "210", sum.InventoryValue.String())

	_, err = f.svc.Analytics.Dashboard(ctx, viewer, "2w")
	require.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.svc.Analytics.Dashboard(ctx, Actor{Role: "guest"}, "7d")
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = f.svc.Analytics.SetUnitCost(ctx, staff, "Bolts", 1)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := Actor{Name: "root", Role: users.RoleAdmin}

	_, err := f.svc.Users.Upsert(ctx, manager, users.User{Username: "x", Role: users.RoleStaff})
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.svc.Users.Upsert(ctx, admin, users.User{Username: "x", Role: "owner"})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	u, err := f.svc.Users.Upsert(ctx, admin, users.User{Username: "mia", TelegramID: 11, Role: "Manager"})
	require.NoError(t, err)
	assert.Equal(t, users.RoleManager, u.Role)
	_, err = f.svc.Users.Upsert(ctx, admin, users.User{Username: "sam", TelegramID: 12, Role: users.RoleStaff})
	require.NoError(t, err)

	ids, err := f.svc.Users.AlertRecipients(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, ids)

	got, err := f.svc.Users.ByTelegramID(ctx, 12)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "sam", got.Username)

	_, err = f.svc.Users.SetRole(ctx, admin, got.ID, users.RoleManager)
	require.NoError(t, err)
	ids, err = f.svc.Users.AlertRecipients(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{11, 12}, ids)

	require.ErrorIs(t, f.svc.Users.Delete(ctx, admin, "missing"), apperrors.ErrNotFound)
}

type slowMaterials struct{ MaterialStore }

func (slowMaterials) List(ctx context.Context) ([]materials.Material, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestStoreTimeoutSurfacesAsPersistenceError(t *testing.T) {
	f := newFixture(t, func(s *Stores) { s.Materials = slowMaterials{s.Materials} })

	_, err := f.svc.Alerts.Check(context.Background())
	require.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
