package service

import (
	"context"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/catalog"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
	"github.com/Spok95/inventory-tracker/internal/domain/users"
)

// Stores are satisfied by the postgres repos and by memstore. Get methods
// return nil, nil when the record is missing; writes on a missing record
// return an apperrors NotFound.

type MaterialStore interface {
	List(ctx context.Context) ([]materials.Material, error)
	GetByCode(ctx context.Context, code string) (*materials.Material, error)
	// Create fails with a validation error when the code is taken.
	Create(ctx context.Context, m materials.Material) (*materials.Material, error)
	// Update leaves the on-hand quantity untouched; only TransactionStore moves it.
	Update(ctx context.Context, m materials.Material) (*materials.Material, error)
	Delete(ctx context.Context, code string) error
}

// TransactionStore applies every movement to its material atomically.
type TransactionStore interface {
	Record(ctx context.Context, t inventory.Transaction) (*inventory.Transaction, error)
	Update(ctx context.Context, t inventory.Transaction) (*inventory.Transaction, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*inventory.Transaction, error)
	List(ctx context.Context) ([]inventory.Transaction, error)
}

type DefectStore interface {
	Create(ctx context.Context, d defects.Defect) (*defects.Defect, error)
	Update(ctx context.Context, d defects.Defect) (*defects.Defect, error)
	Get(ctx context.Context, id string) (*defects.Defect, error)
	List(ctx context.Context) ([]defects.Defect, error)
	Delete(ctx context.Context, id string) error
}

// AlertStore.Put reports false without error when an unacknowledged alert
// with the same dedup key already exists.
type AlertStore interface {
	List(ctx context.Context) ([]alerts.Alert, error)
	ListUnacknowledged(ctx context.Context) ([]alerts.Alert, error)
	Put(ctx context.Context, a alerts.Alert) (bool, error)
	Acknowledge(ctx context.Context, id string) error
	AcknowledgeAll(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
	ClearAcknowledged(ctx context.Context) (int64, error)
	ClearAll(ctx context.Context) (int64, error)
}

type UserStore interface {
	GetByTelegramID(ctx context.Context, tgID int64) (*users.User, error)
	List(ctx context.Context) ([]users.User, error)
	Upsert(ctx context.Context, u users.User) (*users.User, error)
	SetRole(ctx context.Context, id string, role users.Role) (*users.User, error)
	Delete(ctx context.Context, id string) error
}

type CategoryStore interface {
	UpsertCategory(ctx context.Context, name string, unitCost float64) (*catalog.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*catalog.Category, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	SetCategoryActive(ctx context.Context, name string, active bool) (*catalog.Category, error)
}

// Stores groups the repositories a deployment is wired with.
type Stores struct {
	Materials    MaterialStore
	Transactions TransactionStore
	Defects      DefectStore
	Alerts       AlertStore
	Users        UserStore
	Categories   CategoryStore
}
