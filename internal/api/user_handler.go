package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func (h *UserHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), actorOf(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, out)
}

func (h *UserHandler) Upsert(c *gin.Context) {
	var req users.User
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Upsert(c.Request.Context(), actorOf(c), req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, u)
}

type roleRequest struct {
	Role users.Role `json:"role" binding:"required"`
}

func (h *UserHandler) SetRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.SetRole(c.Request.Context(), actorOf(c), c.Param("id"), req.Role)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), actorOf(c), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
