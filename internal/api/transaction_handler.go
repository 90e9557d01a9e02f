package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
	"github.com/Spok95/inventory-tracker/internal/service"
)

type TransactionHandler struct {
	svc *service.InventoryService
}

type updateTransactionRequest struct {
	Type inventory.MoveType `json:"transactionType"`
	service.Movement
}

func (h *TransactionHandler) List(c *gin.Context) {
	out, err := h.svc.ListTransactions(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, out)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	t, err := h.svc.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, t)
}

func (h *TransactionHandler) Receive(c *gin.Context) { h.move(c, inventory.MoveReceiving) }

func (h *TransactionHandler) Issue(c *gin.Context) { h.move(c, inventory.MoveIssuance) }

func (h *TransactionHandler) move(c *gin.Context, typ inventory.MoveType) {
	var mv service.Movement
	if err := c.ShouldBindJSON(&mv); err != nil {
		BadRequest(c, err.Error())
		return
	}
	var (
		t   *inventory.Transaction
		err error
	)
	if typ == inventory.MoveIssuance {
		t, err = h.svc.Issue(c.Request.Context(), actorOf(c), mv)
	} else {
		t, err = h.svc.Receive(c.Request.Context(), actorOf(c), mv)
	}
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, t)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	t, err := h.svc.UpdateTransaction(c.Request.Context(), actorOf(c), c.Param("id"), req.Type, req.Movement)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, t)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteTransaction(c.Request.Context(), actorOf(c), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
