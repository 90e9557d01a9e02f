package analytics

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
)

// DefaultLossFactor is the share of a defective quantity counted as lost.
const DefaultLossFactor = 0.5

// CostTable maps a category to an estimated unit cost. Unmapped categories
// use Default. These are estimates, not ledger values.
type CostTable struct {
	Costs   map[string]decimal.Decimal
	Default decimal.Decimal
}

// NewCostTable builds a table with case-insensitive category keys.
func NewCostTable(costs map[string]float64, def float64) CostTable {
	t := CostTable{Costs: make(map[string]decimal.Decimal, len(costs)), Default: decimal.NewFromFloat(def)}
	for k, v := range costs {
		t.Costs[costKey(k)] = decimal.NewFromFloat(v)
	}
	return t
}

// With returns a copy with category's cost set.
func (t CostTable) With(category string, cost decimal.Decimal) CostTable {
	out := CostTable{Costs: make(map[string]decimal.Decimal, len(t.Costs)+1), Default: t.Default}
	for k, v := range t.Costs {
		out.Costs[k] = v
	}
	out.Costs[costKey(category)] = cost
	return out
}

func (t CostTable) UnitCost(category string) decimal.Decimal {
	if c, ok := t.Costs[costKey(category)]; ok {
		return c
	}
	return t.Default
}

func costKey(category string) string { return strings.ToLower(strings.TrimSpace(category)) }

// EstimatedInventoryValue sums quantity * unit cost over materials.
func EstimatedInventoryValue(mats []materials.Material, costs CostTable) decimal.Decimal {
	total := decimal.Zero
	for _, m := range mats {
		total = total.Add(decimal.NewFromFloat(m.Quantity).Mul(costs.UnitCost(m.Category)))
	}
	return total
}

// DefectLossEstimate sums quantity * unit cost * lossFactor over defects.
// Defects whose material is unknown are skipped.
func DefectLossEstimate(ds []defects.Defect, mats []materials.Material, costs CostTable, lossFactor float64) decimal.Decimal {
	byCode := make(map[string]materials.Material, len(mats))
	for _, m := range mats {
		byCode[m.Code] = m
	}
	factor := decimal.NewFromFloat(lossFactor)

	total := decimal.Zero
	for _, d := range ds {
		m, ok := byCode[d.MaterialCode]
		if !ok {
			continue
		}
		total = total.Add(decimal.NewFromFloat(d.Quantity).Mul(costs.UnitCost(m.Category)).Mul(factor))
	}
	return total
}
