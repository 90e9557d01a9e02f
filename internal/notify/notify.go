// Package notify hands alerts, movements and defect reports to external
// channels. Delivery failures never change entity state.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
)

type Kind string

const (
	KindAlert       Kind = "alert"
	KindTransaction Kind = "transaction"
	KindDefect      Kind = "defect"
)

// Event carries exactly one record matching Kind.
type Event struct {
	Kind        Kind                   `json:"kind"`
	Alert       *alerts.Alert          `json:"alert,omitempty"`
	Transaction *inventory.Transaction `json:"transaction,omitempty"`
	Defect      *defects.Defect        `json:"defect,omitempty"`
}

func AlertEvent(a alerts.Alert) Event { return Event{Kind: KindAlert, Alert: &a} }

func TransactionEvent(t inventory.Transaction) Event {
	return Event{Kind: KindTransaction, Transaction: &t}
}

func DefectEvent(d defects.Defect) Event { return Event{Kind: KindDefect, Defect: &d} }

type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }

func qty(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// Text renders the event as a short plain text message.
func (e Event) Text() string {
	var b strings.Builder
	switch {
	case e.Kind == KindAlert && e.Alert != nil:
		a := e.Alert
		fmt.Fprintf(&b, "[%s] %s alert\n", strings.ToUpper(string(a.Severity)), a.Type)
		fmt.Fprintf(&b, "%s %s\n", a.MaterialCode, a.MaterialDescription)
		b.WriteString(a.Message)
	case e.Kind == KindTransaction && e.Transaction != nil:
		t := e.Transaction
		sign := "+"
		if t.Type == inventory.MoveIssuance {
			sign = "-"
		}
		fmt.Fprintf(&b, "Stock %s: %s %s%s %s\n", t.Type, t.MaterialCode, sign, qty(t.Quantity), t.Unit)
		if t.MaterialDescription != "" {
			b.WriteString(t.MaterialDescription + "\n")
		}
		fmt.Fprintf(&b, "by %s", t.User)
		if t.Reference != "" {
			fmt.Fprintf(&b, ", ref %s", t.Reference)
		}
	case e.Kind == KindDefect && e.Defect != nil:
		d := e.Defect
		fmt.Fprintf(&b, "Defect %s (%s): %s %s %s\n", d.DefectType, d.Severity, d.MaterialCode, qty(d.Quantity), d.Unit)
		if d.Description != "" {
			b.WriteString(d.Description + "\n")
		}
		fmt.Fprintf(&b, "status %s, reported by %s", d.Status, d.ReportedBy)
	default:
		return string(e.Kind)
	}
	return b.String()
}
