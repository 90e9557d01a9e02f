package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
	"github.com/Spok95/inventory-tracker/internal/service"
)

type AlertHandler struct {
	svc *service.AlertService
}

// List returns all alerts, or only pending ones with ?pending=true.
func (h *AlertHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), c.Query("pending") == "true")
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, out)
}

// Check runs the rules on demand. Partial persistence failures still return
// the alerts that were written, with code 50002.
func (h *AlertHandler) Check(c *gin.Context) {
	if !users.CanManageInventory(actorOf(c).Role) {
		Fail(c, apperrors.Forbidden("run alert check"))
		return
	}
	res, err := h.svc.Check(c.Request.Context())
	if err != nil {
		status, code := classify(err)
		_ = c.Error(err)
		c.JSON(status, Response{Code: code, Message: err.Error(), Data: res})
		return
	}
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "success", Data: res})
}

func (h *AlertHandler) Acknowledge(c *gin.Context) {
	if err := h.svc.Acknowledge(c.Request.Context(), actorOf(c), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

func (h *AlertHandler) AcknowledgeAll(c *gin.Context) {
	n, err := h.svc.AcknowledgeAll(c.Request.Context(), actorOf(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"affected": n})
}

func (h *AlertHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), actorOf(c), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

func (h *AlertHandler) ClearAcknowledged(c *gin.Context) {
	n, err := h.svc.ClearAcknowledged(c.Request.Context(), actorOf(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"affected": n})
}

func (h *AlertHandler) ClearAll(c *gin.Context) {
	n, err := h.svc.ClearAll(c.Request.Context(), actorOf(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"affected": n})
}
