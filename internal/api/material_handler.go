package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Spok95/inventory-tracker/internal/domain/materials"
	"github.com/Spok95/inventory-tracker/internal/service"
)

type MaterialHandler struct {
	svc *service.InventoryService
}

func (h *MaterialHandler) List(c *gin.Context) {
	out, err := h.svc.ListMaterials(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, out)
}

func (h *MaterialHandler) Get(c *gin.Context) {
	m, err := h.svc.GetMaterial(c.Request.Context(), c.Param("code"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, m)
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req materials.Material
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.CreateMaterial(c.Request.Context(), actorOf(c), req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, m)
}

func (h *MaterialHandler) Update(c *gin.Context) {
	var req materials.Material
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.UpdateMaterial(c.Request.Context(), actorOf(c), c.Param("code"), req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, m)
}

func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteMaterial(c.Request.Context(), actorOf(c), c.Param("code")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
