package materials

import (
	"math"
	"strings"
	"time"

	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type Material struct {
	ID          string    `json:"id"`
	Code        string    `json:"materialCode"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Unit        string    `json:"unit"`
	Quantity    float64   `json:"quantity"`
	Location    string    `json:"location"`
	LastUpdated time.Time `json:"lastUpdated"`
	// SAPQuantity is the quantity reported by the ERP, nil when unknown.
	SAPQuantity      *float64 `json:"sapQuantity,omitempty"`
	ReorderThreshold *float64 `json:"reorderThreshold,omitempty"`
}

// Normalize trims the free-text fields in place.
func (m *Material) Normalize() {
	m.Code = strings.TrimSpace(m.Code)
	m.Description = strings.TrimSpace(m.Description)
	m.Category = strings.TrimSpace(m.Category)
	m.Unit = strings.TrimSpace(m.Unit)
	m.Location = strings.TrimSpace(m.Location)
}

func (m Material) Validate() error {
	if strings.TrimSpace(m.Code) == "" {
		return apperrors.Validation("materialCode", "required")
	}
	if !finite(m.Quantity) || m.Quantity < 0 {
		return apperrors.Validation("quantity", "must be >= 0")
	}
	if m.SAPQuantity != nil && !finite(*m.SAPQuantity) {
		return apperrors.Validation("sapQuantity", "must be a number")
	}
	if m.ReorderThreshold != nil && (!finite(*m.ReorderThreshold) || *m.ReorderThreshold < 0) {
		return apperrors.Validation("reorderThreshold", "must be >= 0")
	}
	return nil
}

// OutOfStock is true when nothing is on hand.
func (m Material) OutOfStock() bool { return m.Quantity <= 0 }

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Float is a helper for building optional quantities.
func Float(f float64) *float64 { return &f }
