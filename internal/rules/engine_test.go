package rules

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
)

var evalTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	n := 0
	return NewEngine(DefaultThresholds(),
		WithClock(func() time.Time { return evalTime }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
}

func mat(code string, qty float64, sap *float64) materials.Material {
	return materials.Material{Code: code, Description: "desc " + code, Unit: "pcs", Quantity: qty, SAPQuantity: sap}
}

func byType(res Result, t alerts.Type) []alerts.Alert {
	var out []alerts.Alert
	for _, a := range res.Created {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func TestEvaluate_NoSAPQuantityNeverMismatches(t *testing.T) {
	e := newTestEngine()
	res := e.Evaluate([]materials.Material{
		mat("A", 0, nil),
		mat("B", 500, nil),
		mat("C", 3, nil),
	}, nil)

	assert.Empty(t, byType(res, alerts.TypeMismatch))
}

func TestEvaluate_MismatchTrigger(t *testing.T) {
	tests := []struct {
		name    string
		qty     float64
		sap     float64
		trigger bool
	}{
		{"equal", 100, 100, false},
		{"below both thresholds", 100.5, 100, false},
		{"exactly one unit", 101, 100, true},
		{"one unit short", 99, 100, true},
		{"percent over one", 0.5, 0.49, true},
		{"fractional units above one", 1010, 1000.5, true},
		{"both zero", 0, 0, false},
		{"sap zero with stock", 0.5, 0, true},
		{"large base small relative", 10000.4, 10000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestEngine().Evaluate([]materials.Material{mat("X", tt.qty, materials.Float(tt.sap))}, nil)
			got := byType(res, alerts.TypeMismatch)
			if tt.trigger {
				require.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestEvaluate_MismatchSeverity(t *testing.T) {
	tests := []struct {
		name string
		qty  float64
		sap  float64
		want alerts.Severity
	}{
		{"21 percent", 121, 100, alerts.SeverityCritical},
		{"11 percent", 111, 100, alerts.SeverityError},
		{"5 percent", 105, 100, alerts.SeverityWarning},
		{"exactly 20 percent", 120, 100, alerts.SeverityError},
		{"over 100 units", 10101, 10000, alerts.SeverityCritical},
		{"over 50 units", 10051, 10000, alerts.SeverityError},
		{"exactly 50 units", 10050, 10000, alerts.SeverityWarning},
		{"negative variance", 70, 100, alerts.SeverityCritical},
		{"sap zero counts as 100 percent", 3, 0, alerts.SeverityCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestEngine().Evaluate([]materials.Material{mat("X", tt.qty, materials.Float(tt.sap))}, nil)
			got := byType(res, alerts.TypeMismatch)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Severity)
		})
	}
}

func TestEvaluate_MismatchScenarioX1(t *testing.T) {
	res := newTestEngine().Evaluate([]materials.Material{mat("X1", 150, materials.Float(100))}, nil)

	got := byType(res, alerts.TypeMismatch)
	require.Len(t, got, 1)
	a := got[0]
	assert.Equal(t, 50.0, a.Variance)
	assert.Equal(t, 50.0, VariancePercent(150, 100))
	assert.Equal(t, alerts.SeverityCritical, a.Severity)
	assert.Equal(t, 150.0, a.LocalQuantity)
	assert.Equal(t, 100.0, a.SAPQuantity)
	assert.Equal(t, "desc X1", a.MaterialDescription)
	assert.Equal(t, evalTime, a.CreatedAt)
	assert.False(t, a.Acknowledged)
	assert.Equal(t, "Stock mismatch: local 150 pcs vs SAP 100 pcs (variance +50.00)", a.Message)
}

func TestEvaluate_MismatchMessageNegativeVariance(t *testing.T) {
	res := newTestEngine().Evaluate([]materials.Material{mat("X", 97.5, materials.Float(100))}, nil)
	got := byType(res, alerts.TypeMismatch)
	require.Len(t, got, 1)
	assert.Equal(t, "Stock mismatch: local 97.5 pcs vs SAP 100 pcs (variance -2.50)", got[0].Message)
}

func TestEvaluate_LowStock(t *testing.T) {
	tests := []struct {
		qty  float64
		want alerts.Severity // empty means no alert
	}{
		{0, ""},
		{0.5, alerts.SeverityCritical},
		{5, alerts.SeverityCritical},
		{5.5, alerts.SeverityWarning},
		{8, alerts.SeverityWarning},
		{10, alerts.SeverityWarning},
		{11, ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("qty=%v", tt.qty), func(t *testing.T) {
			res := newTestEngine().Evaluate([]materials.Material{mat("L", tt.qty, nil)}, nil)
			got := byType(res, alerts.TypeLowStock)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Severity)
		})
	}
}

func TestEvaluate_ScenarioX2(t *testing.T) {
	res := newTestEngine().Evaluate([]materials.Material{mat("X2", 8, nil)}, nil)

	assert.Empty(t, byType(res, alerts.TypeMismatch))
	low := byType(res, alerts.TypeLowStock)
	require.Len(t, low, 1)
	assert.Equal(t, alerts.SeverityWarning, low[0].Severity)
	assert.Equal(t, "Low stock: 8 pcs remaining (threshold 10)", low[0].Message)
}

func TestEvaluate_LowStockIndependentOfMismatch(t *testing.T) {
	res := newTestEngine().Evaluate([]materials.Material{mat("B", 4, materials.Float(40))}, nil)

	require.Len(t, res.Created, 2)
	assert.Len(t, byType(res, alerts.TypeMismatch), 1)
	low := byType(res, alerts.TypeLowStock)
	require.Len(t, low, 1)
	assert.Equal(t, 40.0, low[0].SAPQuantity)
}

func TestEvaluate_DedupIdempotence(t *testing.T) {
	mats := []materials.Material{
		mat("X1", 150, materials.Float(100)),
		mat("X2", 8, nil),
		mat("X3", 3, materials.Float(9)),
		mat("X4", 400, materials.Float(400)),
	}
	e := newTestEngine()

	first := e.Evaluate(mats, nil)
	require.NotEmpty(t, first.Created)
	assert.Empty(t, first.Skipped)

	second := e.Evaluate(mats, first.Created)
	assert.Empty(t, second.Created)
	assert.Len(t, second.Skipped, len(first.Created))
	for _, s := range second.Skipped {
		assert.Equal(t, alerts.Key(s.Type, s.MaterialCode), s.Key)
	}
}

func TestEvaluate_AcknowledgedAlertsDoNotBlock(t *testing.T) {
	mats := []materials.Material{mat("X1", 150, materials.Float(100))}
	pending := []alerts.Alert{{Type: alerts.TypeMismatch, MaterialCode: "X1", Acknowledged: true}}

	res := newTestEngine().Evaluate(mats, pending)
	assert.Len(t, byType(res, alerts.TypeMismatch), 1)
}

func TestEvaluate_DedupPerType(t *testing.T) {
	mats := []materials.Material{mat("X1", 4, materials.Float(100))}
	pending := []alerts.Alert{{Type: alerts.TypeLowStock, MaterialCode: "X1"}}

	res := newTestEngine().Evaluate(mats, pending)
	assert.Len(t, byType(res, alerts.TypeMismatch), 1)
	assert.Empty(t, byType(res, alerts.TypeLowStock))
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "low-stock-X1", res.Skipped[0].Key)
}

func TestEvaluate_DuplicateCodesInInputCreateOnce(t *testing.T) {
	mats := []materials.Material{mat("D", 3, nil), mat("D", 2, nil)}

	res := newTestEngine().Evaluate(mats, nil)
	assert.Len(t, res.Created, 1)
	assert.Len(t, res.Skipped, 1)
}

func TestEvaluate_IgnoresMaterialsWithoutCode(t *testing.T) {
	res := newTestEngine().Evaluate([]materials.Material{mat("", 3, materials.Float(100))}, nil)
	assert.Empty(t, res.Created)
	assert.Empty(t, res.Skipped)
}

func TestEvaluate_OrderIndependent(t *testing.T) {
	a := mat("A", 150, materials.Float(100))
	b := mat("B", 7, nil)

	r1 := newTestEngine().Evaluate([]materials.Material{a, b}, nil)
	r2 := newTestEngine().Evaluate([]materials.Material{b, a}, nil)

	keys := func(r Result) map[string]alerts.Severity {
		out := map[string]alerts.Severity{}
		for _, a := range r.Created {
			out[a.DedupKey()] = a.Severity
		}
		return out
	}
	assert.Equal(t, keys(r1), keys(r2))
}

func TestEvaluate_FreshIDs(t *testing.T) {
	res := NewEngine(DefaultThresholds()).Evaluate([]materials.Material{mat("A", 3, materials.Float(50))}, nil)
	require.Len(t, res.Created, 2)
	assert.NotEmpty(t, res.Created[0].ID)
	assert.NotEqual(t, res.Created[0].ID, res.Created[1].ID)
}

func TestEvaluate_CustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.LowStockLevel = 50
	th.LowStockCritical = 20
	th.MismatchMinVariance = 10
	th.MismatchMinPercent = 5

	e := NewEngine(th)
	res := e.Evaluate([]materials.Material{mat("A", 30, nil), mat("B", 104, materials.Float(100))}, nil)

	low := byType(res, alerts.TypeLowStock)
	require.Len(t, low, 1)
	assert.Equal(t, alerts.SeverityWarning, low[0].Severity)
	assert.Empty(t, byType(res, alerts.TypeMismatch))
}

func TestEvaluateDefect(t *testing.T) {
	d := defects.Defect{ID: "d1", MaterialCode: "X1", Quantity: 4, Unit: "pcs", DefectType: "cracked", Severity: defects.SeverityCritical}
	e := newTestEngine()

	res := e.EvaluateDefect(d, nil)
	require.Len(t, res.Created, 1)
	a := res.Created[0]
	assert.Equal(t, alerts.TypeDefect, a.Type)
	assert.Equal(t, alerts.SeverityCritical, a.Severity)
	assert.Equal(t, "d1", a.RelatedID)

	again := e.EvaluateDefect(d, res.Created)
	assert.Empty(t, again.Created)
	assert.Len(t, again.Skipped, 1)

	d.Severity = defects.SeverityMedium
	assert.Empty(t, e.EvaluateDefect(d, nil).Created)

	d.Severity = defects.SeverityHigh
	high := e.EvaluateDefect(d, nil)
	require.Len(t, high.Created, 1)
	assert.Equal(t, alerts.SeverityError, high.Created[0].Severity)
}

func TestVariancePercent_NeverNaN(t *testing.T) {
	assert.Equal(t, 0.0, VariancePercent(0, 0))
	assert.Equal(t, 100.0, VariancePercent(5, 0))
	assert.Equal(t, 100.0, VariancePercent(5, -1))
	assert.InDelta(t, 25.0, VariancePercent(75, 100), 1e-9)
}

func TestThresholds_Validate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())

	th := DefaultThresholds()
	th.ErrorPercent = 30
	assert.Error(t, th.Validate())

	th = DefaultThresholds()
	th.LowStockCritical = 11
	assert.Error(t, th.Validate())
}
