package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Spok95/inventory-tracker/internal/analytics"
	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

const maxListed = 20

func errText(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		return "Access denied."
	case errors.Is(err, apperrors.ErrNotFound):
		return "Not found."
	case errors.Is(err, apperrors.ErrValidation):
		var ae *apperrors.AppError
		if errors.As(err, &ae) {
			return "Invalid input: " + ae.Message
		}
		return "Invalid input."
	case errors.Is(err, apperrors.ErrPersistence):
		return "Storage is unavailable, try again later."
	}
	return "Something went wrong."
}

func badge(s alerts.Severity) string {
	switch s {
	case alerts.SeverityCritical:
		return "🔴"
	case alerts.SeverityError:
		return "🟠"
	}
	return "🟡"
}

func qty(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func formatAlerts(list []alerts.Alert) string {
	if len(list) == 0 {
		return "No pending alerts."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Pending alerts: %d\n", len(list))
	for i, a := range list {
		if i == maxListed {
			fmt.Fprintf(&sb, "\n…and %d more", len(list)-maxListed)
			break
		}
		fmt.Fprintf(&sb, "\n%s %s %s\n%s\nid: %s\n", badge(a.Severity), a.Type, a.MaterialCode, a.Message, a.ID)
	}
	return sb.String()
}

func formatStock(m materials.Material) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\nOn hand: %s %s", m.Code, m.Description, qty(m.Quantity), m.Unit)
	if m.SAPQuantity != nil {
		fmt.Fprintf(&sb, "\nSAP: %s %s (variance %+g)", qty(*m.SAPQuantity), m.Unit, m.Quantity-*m.SAPQuantity)
	}
	if m.Location != "" {
		fmt.Fprintf(&sb, "\nLocation: %s", m.Location)
	}
	if m.OutOfStock() {
		sb.WriteString("\nOut of stock")
	}
	return sb.String()
}

func formatSummary(period string, s analytics.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dashboard (%s)\n", period)
	fmt.Fprintf(&sb, "Materials: %d, low stock %d, out of stock %d\n", s.Materials, s.LowStock, s.OutOfStock)
	fmt.Fprintf(&sb, "Movements: %d receiving, %d issuance\n", s.Transactions.Receiving, s.Transactions.Issuance)
	fmt.Fprintf(&sb, "Open defects: %d\nPending alerts: %d\n", s.OpenDefects, s.UnacknowledgedAlerts)
	fmt.Fprintf(&sb, "Inventory value: %s\nDefect loss: %s", s.InventoryValue.StringFixed(2), s.DefectLoss.StringFixed(2))
	if len(s.TopIssued) > 0 {
		sb.WriteString("\nTop issued:")
		for _, u := range s.TopIssued {
			fmt.Fprintf(&sb, "\n  %s %s: %s", u.MaterialCode, u.MaterialDescription, qty(u.Quantity))
		}
	}
	return sb.String()
}
