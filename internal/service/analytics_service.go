package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Spok95/inventory-tracker/internal/analytics"
	"github.com/Spok95/inventory-tracker/internal/domain/catalog"
	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type AnalyticsService struct {
	base
	materials    MaterialStore
	transactions TransactionStore
	defects      DefectStore
	alerts       AlertStore
	categories   CategoryStore
	lowStock     float64
}

// Snapshot loads the full current collections; windowing happens in memory.
func (s *AnalyticsService) Snapshot(ctx context.Context) (analytics.Snapshot, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var snap analytics.Snapshot
	var err error
	if snap.Materials, err = s.materials.List(ctx); err != nil {
		return snap, storeErr("list materials", err)
	}
	if snap.Transactions, err = s.transactions.List(ctx); err != nil {
		return snap, storeErr("list transactions", err)
	}
	if snap.Defects, err = s.defects.List(ctx); err != nil {
		return snap, storeErr("list defects", err)
	}
	if snap.Alerts, err = s.alerts.List(ctx); err != nil {
		return snap, storeErr("list alerts", err)
	}
	return snap, nil
}

// CostTable overlays the active stored category costs on the configured table.
func (s *AnalyticsService) CostTable(ctx context.Context) (analytics.CostTable, error) {
	costs := s.settings.Costs
	if s.categories == nil {
		return costs, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	cats, err := s.categories.ListCategories(ctx)
	if err != nil {
		return costs, storeErr("list categories", err)
	}
	for _, c := range cats {
		if c.Active {
			costs = costs.With(c.Name, decimal.NewFromFloat(c.UnitCost))
		}
	}
	return costs, nil
}

// Dashboard summarizes the given period ("7d", "30d", "90d", "1y", "all").
func (s *AnalyticsService) Dashboard(ctx context.Context, actor Actor, period string) (analytics.Summary, error) {
	if err := authorize(actor, users.CanViewAnalytics, "view analytics"); err != nil {
		return analytics.Summary{}, err
	}
	now := s.now()
	w, err := analytics.WindowFor(period, now)
	if err != nil {
		return analytics.Summary{}, err
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	costs, err := s.CostTable(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}

	return analytics.Summarize(snap, w, analytics.Options{
		Costs:         costs,
		LossFactor:    s.settings.LossFactor,
		TrendDays:     s.settings.TrendDays,
		LowStockLevel: s.lowStock,
		Now:           now,
		Location:      s.settings.Location,
	}), nil
}

func (s *AnalyticsService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.categories.ListCategories(ctx)
	return out, storeErr("list categories", err)
}

func (s *AnalyticsService) GetCategory(ctx context.Context, name string) (*catalog.Category, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	name = strings.TrimSpace(name)
	out, err := s.categories.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, storeErr("get category", err)
	}
	if out == nil {
		return nil, apperrors.NotFound("category", name)
	}
	return out, nil
}

// SetUnitCost stores the estimated unit cost of a category.
func (s *AnalyticsService) SetUnitCost(ctx context.Context, actor Actor, category string, cost float64) (*catalog.Category, error) {
	if err := authorize(actor, users.CanManageCatalog, "manage category costs"); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.Validation("category", "required")
	}
	if cost < 0 {
		return nil, apperrors.Validation("unitCost", "must be >= 0")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.categories.UpsertCategory(ctx, category, cost)
	return out, storeErr("upsert category", err)
}

func (s *AnalyticsService) SetCategoryActive(ctx context.Context, actor Actor, category string, active bool) (*catalog.Category, error) {
	if err := authorize(actor, users.CanManageCatalog, "manage category costs"); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.categories.SetCategoryActive(ctx, category, active)
	if err != nil {
		return nil, storeErr("update category", err)
	}
	if out == nil {
		return nil, apperrors.NotFound("category", category)
	}
	return out, nil
}
