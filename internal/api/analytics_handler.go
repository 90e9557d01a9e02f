package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Spok95/inventory-tracker/internal/service"
)

type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	sum, err := h.svc.Dashboard(c.Request.Context(), actorOf(c), c.DefaultQuery("period", "30d"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, sum)
}

func (h *AnalyticsHandler) ListCategories(c *gin.Context) {
	out, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, out)
}

func (h *AnalyticsHandler) GetCategory(c *gin.Context) {
	cat, err := h.svc.GetCategory(c.Request.Context(), c.Param("name"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, cat)
}

type unitCostRequest struct {
	UnitCost *float64 `json:"unitCost" binding:"required"`
}

func (h *AnalyticsHandler) SetUnitCost(c *gin.Context) {
	var req unitCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.SetUnitCost(c.Request.Context(), actorOf(c), c.Param("name"), *req.UnitCost)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, cat)
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *AnalyticsHandler) SetActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.SetCategoryActive(c.Request.Context(), actorOf(c), c.Param("name"), *req.Active)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, cat)
}
