// Package rules decides which alerts must exist for the current stock.
// The engine is pure: it reads value snapshots and returns alerts to create,
// leaving persistence to the caller.
package rules

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
)

// Skip records a candidate alert that was not created because an
// unacknowledged alert with the same key is pending.
type Skip struct {
	Key          string      `json:"key"`
	Type         alerts.Type `json:"type"`
	MaterialCode string      `json:"materialCode"`
}

type Result struct {
	Created []alerts.Alert
	Skipped []Skip
}

type Engine struct {
	th    Thresholds
	now   func() time.Time
	newID func() string
}

type Option func(*Engine)

// WithClock overrides the evaluation time source.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithIDs overrides the alert id generator.
func WithIDs(newID func() string) Option { return func(e *Engine) { e.newID = newID } }

func NewEngine(th Thresholds, opts ...Option) *Engine {
	e := &Engine{th: th, now: time.Now, newID: uuid.NewString}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Thresholds() Thresholds { return e.th }

type dedup map[string]struct{}

func newDedup(pending []alerts.Alert) dedup {
	d := make(dedup, len(pending))
	for _, a := range pending {
		if a.Acknowledged {
			continue
		}
		d[a.DedupKey()] = struct{}{}
	}
	return d
}

// claim reports whether key is free and marks it taken.
func (d dedup) claim(key string) bool {
	if _, ok := d[key]; ok {
		return false
	}
	d[key] = struct{}{}
	return true
}

// Evaluate returns the mismatch and low-stock alerts that must be created
// for materials, given the alerts still waiting for acknowledgment.
// Materials without a code are ignored.
func (e *Engine) Evaluate(mats []materials.Material, unacknowledged []alerts.Alert) Result {
	now := e.now()
	seen := newDedup(unacknowledged)

	var res Result
	for _, m := range mats {
		if m.Code == "" {
			continue
		}
		if a, ok := e.mismatch(m, now); ok {
			res.add(seen, a)
		}
		if a, ok := e.lowStock(m, now); ok {
			res.add(seen, a)
		}
	}
	return res
}

// EvaluateDefect raises a defect alert for high and critical defects.
func (e *Engine) EvaluateDefect(d defects.Defect, unacknowledged []alerts.Alert) Result {
	var sev alerts.Severity
	switch d.Severity {
	case defects.SeverityCritical:
		sev = alerts.SeverityCritical
	case defects.SeverityHigh:
		sev = alerts.SeverityError
	default:
		return Result{}
	}
	if d.MaterialCode == "" {
		return Result{}
	}

	a := alerts.Alert{
		ID:                  e.newID(),
		Type:                alerts.TypeDefect,
		MaterialCode:        d.MaterialCode,
		MaterialDescription: d.MaterialDescription,
		Message: fmt.Sprintf("%s defect reported: %s %s affected (%s)",
			d.Severity, formatQty(d.Quantity), d.Unit, d.DefectType),
		LocalQuantity: d.Quantity,
		Severity:      sev,
		CreatedAt:     e.now(),
		RelatedID:     d.ID,
	}
	var res Result
	res.add(newDedup(unacknowledged), a)
	return res
}

func (r *Result) add(seen dedup, a alerts.Alert) {
	key := a.DedupKey()
	if !seen.claim(key) {
		r.Skipped = append(r.Skipped, Skip{Key: key, Type: a.Type, MaterialCode: a.MaterialCode})
		return
	}
	r.Created = append(r.Created, a)
}

// VariancePercent is |variance/sap|*100, or 100 when sap is zero and stock is
// on hand, or 0 when both are zero.
func VariancePercent(quantity, sap float64) float64 {
	variance := quantity - sap
	if sap > 0 {
		return math.Abs(variance/sap) * 100
	}
	if quantity > 0 {
		return 100
	}
	return 0
}

func (e *Engine) mismatch(m materials.Material, now time.Time) (alerts.Alert, bool) {
	if m.SAPQuantity == nil {
		return alerts.Alert{}, false
	}
	sap := *m.SAPQuantity
	variance := m.Quantity - sap
	abs := math.Abs(variance)
	pct := VariancePercent(m.Quantity, sap)

	if abs < e.th.MismatchMinVariance && pct <= e.th.MismatchMinPercent {
		return alerts.Alert{}, false
	}

	sev := alerts.SeverityWarning
	switch {
	case pct > e.th.CriticalPercent || abs > e.th.CriticalVariance:
		sev = alerts.SeverityCritical
	case pct > e.th.ErrorPercent || abs > e.th.ErrorVariance:
		sev = alerts.SeverityError
	}

	return alerts.Alert{
		ID:                  e.newID(),
		Type:                alerts.TypeMismatch,
		MaterialCode:        m.Code,
		MaterialDescription: m.Description,
		Message: fmt.Sprintf("Stock mismatch: local %s %s vs SAP %s %s (variance %+.2f)",
			formatQty(m.Quantity), m.Unit, formatQty(sap), m.Unit, variance),
		LocalQuantity: m.Quantity,
		SAPQuantity:   sap,
		Variance:      variance,
		Severity:      sev,
		CreatedAt:     now,
	}, true
}

// lowStock never fires at zero: out of stock is a separate condition.
func (e *Engine) lowStock(m materials.Material, now time.Time) (alerts.Alert, bool) {
	if m.Quantity <= 0 || m.Quantity > e.th.LowStockLevel {
		return alerts.Alert{}, false
	}
	sev := alerts.SeverityWarning
	if m.Quantity <= e.th.LowStockCritical {
		sev = alerts.SeverityCritical
	}
	var sap float64
	if m.SAPQuantity != nil {
		sap = *m.SAPQuantity
	}
	return alerts.Alert{
		ID:                  e.newID(),
		Type:                alerts.TypeLowStock,
		MaterialCode:        m.Code,
		MaterialDescription: m.Description,
		Message: fmt.Sprintf("Low stock: %s %s remaining (threshold %s)",
			formatQty(m.Quantity), m.Unit, formatQty(e.th.LowStockLevel)),
		LocalQuantity: m.Quantity,
		SAPQuantity:   sap,
		Severity:      sev,
		CreatedAt:     now,
	}, true
}

func formatQty(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
