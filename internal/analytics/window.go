// Package analytics builds read-only reporting summaries over a snapshot of
// materials, transactions, defects and alerts.
package analytics

import (
	"strings"
	"time"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

// Window is a lower time bound. The zero Window is "all time".
type Window struct {
	Start time.Time
}

// AllTime has no lower bound.
var AllTime = Window{}

func (w Window) Contains(t time.Time) bool {
	return w.Start.IsZero() || !t.Before(w.Start)
}

// Periods accepted by WindowFor.
var Periods = []string{"7d", "30d", "90d", "1y", "all"}

// WindowFor maps a dashboard period to a window ending at now.
// An empty period is treated as "all".
func WindowFor(period string, now time.Time) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case "7d":
		return Window{Start: now.AddDate(0, 0, -7)}, nil
	case "30d":
		return Window{Start: now.AddDate(0, 0, -30)}, nil
	case "90d":
		return Window{Start: now.AddDate(0, 0, -90)}, nil
	case "1y":
		return Window{Start: now.AddDate(-1, 0, 0)}, nil
	case "all", "":
		return AllTime, nil
	default:
		return Window{}, apperrors.Validation("period", "must be one of "+strings.Join(Periods, ", "))
	}
}

// Snapshot is the input of every aggregation.
type Snapshot struct {
	Materials    []materials.Material
	Transactions []inventory.Transaction
	Defects      []defects.Defect
	Alerts       []alerts.Alert
}

// Within filters history to the window. Materials describe current state and
// are never date filtered.
func (s Snapshot) Within(w Window) Snapshot {
	out := Snapshot{Materials: s.Materials}
	for _, t := range s.Transactions {
		if w.Contains(t.Date) {
			out.Transactions = append(out.Transactions, t)
		}
	}
	for _, d := range s.Defects {
		if w.Contains(d.ReportedDate) {
			out.Defects = append(out.Defects, d)
		}
	}
	for _, a := range s.Alerts {
		if w.Contains(a.CreatedAt) {
			out.Alerts = append(out.Alerts, a)
		}
	}
	return out
}
