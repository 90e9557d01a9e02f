package alerts

import "time"

type Type string

const (
	TypeMismatch    Type = "mismatch"
	TypeLowStock    Type = "low-stock"
	TypeDiscrepancy Type = "discrepancy"
	TypeDefect      Type = "defect"
	TypeTransaction Type = "transaction"
)

type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Severities in ascending order.
var Severities = []Severity{SeverityWarning, SeverityError, SeverityCritical}

type Alert struct {
	ID                  string    `json:"id"`
	Type                Type      `json:"type"`
	MaterialCode        string    `json:"materialCode"`
	MaterialDescription string    `json:"materialDescription"`
	Message             string    `json:"message"`
	LocalQuantity       float64   `json:"localQuantity"`
	SAPQuantity         float64   `json:"sapQuantity"`
	Variance            float64   `json:"variance"`
	Severity            Severity  `json:"severity"`
	CreatedAt           time.Time `json:"createdAt"`
	Acknowledged        bool      `json:"acknowledged"`
	RelatedID           string    `json:"relatedId,omitempty"`
}

// DedupKey identifies the condition an alert reports. At most one
// unacknowledged alert may exist per key.
func (a Alert) DedupKey() string { return Key(a.Type, a.MaterialCode) }

func Key(t Type, materialCode string) string { return string(t) + "-" + materialCode }

// Unacknowledged filters out acknowledged alerts.
func Unacknowledged(in []Alert) []Alert {
	out := make([]Alert, 0, len(in))
	for _, a := range in {
		if !a.Acknowledged {
			out = append(out, a)
		}
	}
	return out
}
