package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/export"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
	"github.com/Spok95/inventory-tracker/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	svc *service.Services
}

// Download streams one collection as an xlsx workbook.
func (h *ExportHandler) Download(c *gin.Context) {
	if !users.CanExport(actorOf(c).Role) {
		Fail(c, apperrors.Forbidden("export"))
		return
	}
	ctx := c.Request.Context()
	entity := c.Param("entity")

	var (
		cols []export.Column
		rows []export.Row
	)
	switch entity {
	case "materials":
		out, err := h.svc.Inventory.ListMaterials(ctx)
		if err != nil {
			Fail(c, err)
			return
		}
		cols, rows = export.MaterialColumns, export.MaterialRows(out)
	case "transactions":
		out, err := h.svc.Inventory.ListTransactions(ctx)
		if err != nil {
			Fail(c, err)
			return
		}
		cols, rows = export.TransactionColumns, export.TransactionRows(out)
	case "defects":
		out, err := h.svc.Inventory.ListDefects(ctx)
		if err != nil {
			Fail(c, err)
			return
		}
		cols, rows = export.DefectColumns, export.DefectRows(out)
	case "alerts":
		out, err := h.svc.Alerts.List(ctx, false)
		if err != nil {
			Fail(c, err)
			return
		}
		cols, rows = export.AlertColumns, export.AlertRows(out)
	default:
		Fail(c, apperrors.Validation("entity", "must be materials, transactions, defects or alerts"))
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, entity, cols, rows); err != nil {
		Fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, entity))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
