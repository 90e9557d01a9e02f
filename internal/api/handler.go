// Package api is the JSON HTTP transport over the services.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
	"github.com/Spok95/inventory-tracker/internal/service"
)

// Envelope codes.
const (
	CodeOK                = 0
	CodeInvalid           = 10001
	CodeNotFound          = 10002
	CodeInsufficientStock = 10003
	CodeForbidden         = 10004
	CodeInternal          = 50001
	CodePersistence       = 50002
)

// Handlers groups the resource handlers.
type Handlers struct {
	Material    *MaterialHandler
	Transaction *TransactionHandler
	Defect      *DefectHandler
	Alert       *AlertHandler
	Analytics   *AnalyticsHandler
	Export      *ExportHandler
	User        *UserHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Material:    &MaterialHandler{svc: svc.Inventory},
		Transaction: &TransactionHandler{svc: svc.Inventory},
		Defect:      &DefectHandler{svc: svc.Inventory},
		Alert:       &AlertHandler{svc: svc.Alerts},
		Analytics:   &AnalyticsHandler{svc: svc.Analytics},
		Export:      &ExportHandler{svc: svc},
		User:        &UserHandler{svc: svc.Users},
	}
}

type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "success", Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Code: CodeOK, Message: "success", Data: data})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Code: CodeInvalid, Message: message})
}

// Fail maps a service error onto the envelope.
func Fail(c *gin.Context, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, Response{Code: code, Message: err.Error()})
}

func classify(err error) (int, int) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, CodeInvalid
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, apperrors.ErrInsufficientStock):
		return http.StatusConflict, CodeInsufficientStock
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, apperrors.ErrPersistence):
		return http.StatusServiceUnavailable, CodePersistence
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
