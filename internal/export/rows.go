package export

import (
	"time"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
)

const timeLayout = "2006-01-02 15:04"

func ts(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func opt(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

var MaterialColumns = []Column{
	{"materialCode", "Material Code"},
	{"description", "Description"},
	{"category", "Category"},
	{"quantity", "Quantity"},
	{"unit", "Unit"},
	{"sapQuantity", "SAP Quantity"},
	{"location", "Location"},
	{"reorderThreshold", "Reorder Threshold"},
	{"lastUpdated", "Last Updated"},
}

func MaterialRows(in []materials.Material) []Row {
	out := make([]Row, 0, len(in))
	for _, m := range in {
		out = append(out, Row{
			"materialCode":     m.Code,
			"description":      m.Description,
			"category":         m.Category,
			"quantity":         m.Quantity,
			"unit":             m.Unit,
			"sapQuantity":      opt(m.SAPQuantity),
			"location":         m.Location,
			"reorderThreshold": opt(m.ReorderThreshold),
			"lastUpdated":      ts(m.LastUpdated),
		})
	}
	return out
}

var TransactionColumns = []Column{
	{"date", "Date"},
	{"transactionType", "Type"},
	{"materialCode", "Material Code"},
	{"materialDescription", "Description"},
	{"quantity", "Quantity"},
	{"unit", "Unit"},
	{"user", "User"},
	{"reference", "Reference"},
	{"notes", "Notes"},
}

func TransactionRows(in []inventory.Transaction) []Row {
	out := make([]Row, 0, len(in))
	for _, t := range in {
		out = append(out, Row{
			"date":                ts(t.Date),
			"transactionType":     string(t.Type),
			"materialCode":        t.MaterialCode,
			"materialDescription": t.MaterialDescription,
			"quantity":            t.Quantity,
			"unit":                t.Unit,
			"user":                t.User,
			"reference":           t.Reference,
			"notes":               t.Notes,
		})
	}
	return out
}

var DefectColumns = []Column{
	{"reportedDate", "Reported"},
	{"materialCode", "Material Code"},
	{"materialDescription", "Description"},
	{"defectType", "Defect Type"},
	{"quantity", "Quantity"},
	{"unit", "Unit"},
	{"severity", "Severity"},
	{"status", "Status"},
	{"reportedBy", "Reported By"},
	{"resolutionNotes", "Resolution Notes"},
}

func DefectRows(in []defects.Defect) []Row {
	out := make([]Row, 0, len(in))
	for _, d := range in {
		out = append(out, Row{
			"reportedDate":        ts(d.ReportedDate),
			"materialCode":        d.MaterialCode,
			"materialDescription": d.MaterialDescription,
			"defectType":          d.DefectType,
			"quantity":            d.Quantity,
			"unit":                d.Unit,
			"severity":            string(d.Severity),
			"status":              string(d.Status),
			"reportedBy":          d.ReportedBy,
			"resolutionNotes":     d.ResolutionNotes,
		})
	}
	return out
}

var AlertColumns = []Column{
	{"createdAt", "Created"},
	{"type", "Type"},
	{"severity", "Severity"},
	{"materialCode", "Material Code"},
	{"materialDescription", "Description"},
	{"localQuantity", "Local Quantity"},
	{"sapQuantity", "SAP Quantity"},
	{"variance", "Variance"},
	{"message", "Message"},
	{"acknowledged", "Acknowledged"},
}

func AlertRows(in []alerts.Alert) []Row {
	out := make([]Row, 0, len(in))
	for _, a := range in {
		out = append(out, Row{
			"createdAt":           ts(a.CreatedAt),
			"type":                string(a.Type),
			"severity":            string(a.Severity),
			"materialCode":        a.MaterialCode,
			"materialDescription": a.MaterialDescription,
			"localQuantity":       a.LocalQuantity,
			"sapQuantity":         a.SAPQuantity,
			"variance":            a.Variance,
			"message":             a.Message,
			"acknowledged":        a.Acknowledged,
		})
	}
	return out
}
