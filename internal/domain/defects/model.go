package defects

import (
	"math"
	"strings"
	"time"

	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities in ascending order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func (s Severity) Valid() bool {
	for _, v := range Severities {
		if s == v {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusResolved
}

type Defect struct {
	ID                  string    `json:"id"`
	MaterialCode        string    `json:"materialCode"`
	MaterialDescription string    `json:"materialDescription"`
	DefectType          string    `json:"defectType"`
	Quantity            float64   `json:"quantity"`
	Unit                string    `json:"unit"`
	Severity            Severity  `json:"severity"`
	Description         string    `json:"description"`
	ReportedBy          string    `json:"reportedBy"`
	ReportedDate        time.Time `json:"reportedDate"`
	Status              Status    `json:"status"`
	ResolutionNotes     string    `json:"resolutionNotes,omitempty"`
}

func (d Defect) Validate() error {
	if strings.TrimSpace(d.MaterialCode) == "" {
		return apperrors.Validation("materialCode", "required")
	}
	if math.IsNaN(d.Quantity) || math.IsInf(d.Quantity, 0) || d.Quantity <= 0 {
		return apperrors.Validation("quantity", "must be > 0")
	}
	if !d.Severity.Valid() {
		return apperrors.Validation("severity", "must be low, medium, high or critical")
	}
	if !d.Status.Valid() {
		return apperrors.Validation("status", "must be open, in-progress or resolved")
	}
	if d.Status == StatusResolved && strings.TrimSpace(d.ResolutionNotes) == "" {
		return apperrors.Validation("resolutionNotes", "required when resolved")
	}
	return nil
}

// WithStatus returns a copy moved to status. Notes replace the stored
// resolution notes only when non-empty.
func (d Defect) WithStatus(status Status, notes string) (Defect, error) {
	d.Status = status
	if n := strings.TrimSpace(notes); n != "" {
		d.ResolutionNotes = n
	}
	if err := d.Validate(); err != nil {
		return Defect{}, err
	}
	return d, nil
}
