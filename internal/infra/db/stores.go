package db

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/catalog"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/service"
)

var (
	_ service.MaterialStore    = (*materials.Repo)(nil)
	_ service.TransactionStore = (*inventory.Repo)(nil)
	_ service.DefectStore      = (*defects.Repo)(nil)
	_ service.AlertStore       = (*alerts.Repo)(nil)
	_ service.UserStore        = (*users.Repo)(nil)
	_ service.CategoryStore    = (*catalog.Repo)(nil)
)

// Stores wires the postgres repositories.
func Stores(pool *pgxpool.Pool) service.Stores {
	return service.Stores{
		Materials:    materials.NewRepo(pool),
		Transactions: inventory.NewRepo(pool),
		Defects:      defects.NewRepo(pool),
		Alerts:       alerts.NewRepo(pool),
		Users:        users.NewRepo(pool),
		Categories:   catalog.NewRepo(pool),
	}
}
