package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/service"
)

type DefectHandler struct {
	svc *service.InventoryService
}

type defectStatusRequest struct {
	Status          defects.Status `json:"status" binding:"required"`
	ResolutionNotes string         `json:"resolutionNotes"`
}

func (h *DefectHandler) List(c *gin.Context) {
	out, err := h.svc.ListDefects(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, out)
}

func (h *DefectHandler) Report(c *gin.Context) {
	var req defects.Defect
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	d, err := h.svc.ReportDefect(c.Request.Context(), actorOf(c), req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, d)
}

func (h *DefectHandler) UpdateStatus(c *gin.Context) {
	var req defectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	d, err := h.svc.UpdateDefectStatus(c.Request.Context(), actorOf(c), c.Param("id"), req.Status, req.ResolutionNotes)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, d)
}

func (h *DefectHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteDefect(c.Request.Context(), actorOf(c), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
