// Package service orchestrates the stores, the rule engine and the
// notification sinks. Every store call runs under the configured timeout.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Spok95/inventory-tracker/internal/analytics"
	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/infra/metrics"
	"github.com/Spok95/inventory-tracker/internal/notify"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
	"github.com/Spok95/inventory-tracker/internal/rules"
)

const defaultTimeout = 5 * time.Second

// Actor is the user on whose behalf an operation runs.
type Actor struct {
	Name string
	Role users.Role
}

// System is used by scheduled jobs.
var System = Actor{Name: "system", Role: users.RoleAdmin}

func authorize(a Actor, can func(users.Role) bool, action string) error {
	if !can(a.Role) {
		return apperrors.Forbidden(action)
	}
	return nil
}

type Settings struct {
	Timeout    time.Duration
	Costs      analytics.CostTable
	LossFactor float64
	TrendDays  int
	Location   *time.Location
}

type Deps struct {
	Stores   Stores
	Engine   *rules.Engine
	Notifier notify.Notifier
	Metrics  *metrics.Metrics
	Log      *slog.Logger
	Settings Settings

	// Overridable in tests.
	Now   func() time.Time
	NewID func() string
}

// Services is the aggregate handed to the transports.
type Services struct {
	Inventory *InventoryService
	Alerts    *AlertService
	Analytics *AnalyticsService
	Users     *UserService
}

func New(d Deps) *Services {
	b := newBase(d)
	alertSvc := &AlertService{base: b, materials: d.Stores.Materials, alerts: d.Stores.Alerts, engine: d.Engine}
	return &Services{
		Inventory: &InventoryService{
			base:         b,
			materials:    d.Stores.Materials,
			transactions: d.Stores.Transactions,
			defects:      d.Stores.Defects,
			checker:      alertSvc,
		},
		Alerts: alertSvc,
		Analytics: &AnalyticsService{
			base:         b,
			materials:    d.Stores.Materials,
			transactions: d.Stores.Transactions,
			defects:      d.Stores.Defects,
			alerts:       d.Stores.Alerts,
			categories:   d.Stores.Categories,
			lowStock:     d.Engine.Thresholds().LowStockLevel,
		},
		Users: &UserService{base: b, users: d.Stores.Users},
	}
}

type base struct {
	log      *slog.Logger
	notifier notify.Notifier
	metrics  *metrics.Metrics
	settings Settings
	now      func() time.Time
	newID    func() string
}

func newBase(d Deps) base {
	b := base{
		log:      d.Log,
		notifier: d.Notifier,
		metrics:  d.Metrics,
		settings: d.Settings,
		now:      d.Now,
		newID:    d.NewID,
	}
	if b.log == nil {
		b.log = slog.Default()
	}
	if b.notifier == nil {
		b.notifier = notify.Nop{}
	}
	if b.settings.Timeout <= 0 {
		b.settings.Timeout = defaultTimeout
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.newID == nil {
		b.newID = uuid.NewString
	}
	return b
}

func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.settings.Timeout)
}

// storeErr keeps classified errors and wraps the rest as retryable store
// failures.
func storeErr(op string, err error) error {
	if err == nil || apperrors.IsDomain(err) {
		return err
	}
	return apperrors.Persistence(op, err)
}

// notify runs detached from the caller's cancellation so that a finished
// write still gets reported.
func (b base) notify(ctx context.Context, e notify.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.settings.Timeout)
	defer cancel()
	if err := b.notifier.Notify(ctx, e); err != nil {
		b.log.Warn("notification not delivered", "kind", e.Kind, "err", err)
	}
}
