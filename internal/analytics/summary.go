package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
)

type Options struct {
	Costs         CostTable
	LossFactor    float64
	TrendDays     int
	LowStockLevel float64
	TopN          int
	Now           time.Time
	Location      *time.Location
}

// Usage is the issued quantity of one material.
type Usage struct {
	MaterialCode        string  `json:"materialCode"`
	MaterialDescription string  `json:"materialDescription"`
	Quantity            float64 `json:"quantity"`
}

type Summary struct {
	WindowStart          *time.Time      `json:"windowStart,omitempty"`
	Materials            int             `json:"materials"`
	LowStock             int             `json:"lowStock"`
	OutOfStock           int             `json:"outOfStock"`
	OpenDefects          int             `json:"openDefects"`
	UnacknowledgedAlerts int             `json:"unacknowledgedAlerts"`
	Transactions         TypeCounts      `json:"transactions"`
	Categories           []Share         `json:"categories"`
	DefectSeverity       []Share         `json:"defectSeverity"`
	AlertSeverity        []Share         `json:"alertSeverity"`
	Trend                []DayPoint      `json:"trend"`
	InventoryValue       decimal.Decimal `json:"inventoryValue"`
	DefectLoss           decimal.Decimal `json:"defectLoss"`
	TopIssued            []Usage         `json:"topIssued"`
}

// Summarize runs every aggregation for a dashboard. The trend always covers
// the last TrendDays days regardless of the window.
func Summarize(s Snapshot, w Window, opt Options) Summary {
	if opt.Now.IsZero() {
		opt.Now = time.Now()
	}
	if opt.TrendDays <= 0 {
		opt.TrendDays = 7
	}
	if opt.TopN <= 0 {
		opt.TopN = 5
	}
	f := s.Within(w)

	sum := Summary{
		Materials:      len(s.Materials),
		Transactions:   CountsByType(f.Transactions),
		Categories:     CategoryDistribution(s.Materials),
		DefectSeverity: SeverityDistribution(f.Defects, func(d defects.Defect) defects.Severity { return d.Severity }, defects.Severities),
		AlertSeverity:  SeverityDistribution(f.Alerts, func(a alerts.Alert) alerts.Severity { return a.Severity }, alerts.Severities),
		Trend:          DailyTrend(s.Transactions, opt.TrendDays, opt.Now, opt.Location),
		InventoryValue: EstimatedInventoryValue(s.Materials, opt.Costs),
		DefectLoss:     DefectLossEstimate(f.Defects, s.Materials, opt.Costs, opt.LossFactor),
		TopIssued:      topIssued(f.Transactions, opt.TopN),
	}
	if !w.Start.IsZero() {
		start := w.Start
		sum.WindowStart = &start
	}

	for _, m := range s.Materials {
		switch {
		case m.OutOfStock():
			sum.OutOfStock++
		case m.Quantity <= opt.LowStockLevel:
			sum.LowStock++
		}
	}
	for _, d := range f.Defects {
		if d.Status != defects.StatusResolved {
			sum.OpenDefects++
		}
	}
	for _, a := range f.Alerts {
		if !a.Acknowledged {
			sum.UnacknowledgedAlerts++
		}
	}
	return sum
}

func topIssued(txs []inventory.Transaction, n int) []Usage {
	byCode := make(map[string]*Usage)
	for _, t := range txs {
		if t.Type != inventory.MoveIssuance {
			continue
		}
		u, ok := byCode[t.MaterialCode]
		if !ok {
			u = &Usage{MaterialCode: t.MaterialCode, MaterialDescription: t.MaterialDescription}
			byCode[t.MaterialCode] = u
		}
		u.Quantity += t.Quantity
	}

	out := make([]Usage, 0, len(byCode))
	for _, u := range byCode {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].MaterialCode < out[j].MaterialCode
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
