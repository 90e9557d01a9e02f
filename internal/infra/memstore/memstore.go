// Package memstore keeps every repository in process memory. It backs the
// "memory" storage driver and the service tests.
package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/catalog"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
	"github.com/Spok95/inventory-tracker/internal/domain/users"
)

// db is shared by the repos so that a movement and its material update
// happen under one lock.
type db struct {
	mu sync.Mutex

	materials    map[string]materials.Material
	transactions map[string]inventory.Transaction
	defects      map[string]defects.Defect
	alerts       map[string]alerts.Alert
	users        map[string]users.User
	categories   map[string]catalog.Category
	nextCatID    int64

	now func() time.Time
}

type Store struct {
	Materials    *MaterialRepo
	Transactions *TransactionRepo
	Defects      *DefectRepo
	Alerts       *AlertRepo
	Users        *UserRepo
	Categories   *CategoryRepo
}

type Option func(*db)

// WithClock overrides the timestamp source for LastUpdated and CreatedAt.
func WithClock(now func() time.Time) Option { return func(d *db) { d.now = now } }

func New(opts ...Option) *Store {
	d := &db{
		materials:    make(map[string]materials.Material),
		transactions: make(map[string]inventory.Transaction),
		defects:      make(map[string]defects.Defect),
		alerts:       make(map[string]alerts.Alert),
		users:        make(map[string]users.User),
		categories:   make(map[string]catalog.Category),
		now:          time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	return &Store{
		Materials:    &MaterialRepo{db: d},
		Transactions: &TransactionRepo{db: d},
		Defects:      &DefectRepo{db: d},
		Alerts:       &AlertRepo{db: d},
		Users:        &UserRepo{db: d},
		Categories:   &CategoryRepo{db: d},
	}
}

func values[K comparable, V any](m map[K]V, less func(a, b V) bool) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
