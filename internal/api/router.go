package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/inventory-tracker/internal/service"
)

// NewRouter builds the /api routes. Debug mode follows the app env.
func NewRouter(svc *service.Services, log *slog.Logger, debug bool) *gin.Engine {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID(), Logger(log), gin.Recovery(), CORS(), Identity())

	h := NewHandlers(svc)
	api := r.Group("/api")

	m := api.Group("/materials")
	m.GET("", h.Material.List)
	m.GET("/:code", h.Material.Get)
	m.POST("", h.Material.Create)
	m.PUT("/:code", h.Material.Update)
	m.DELETE("/:code", h.Material.Delete)

	t := api.Group("/transactions")
	t.GET("", h.Transaction.List)
	t.GET("/:id", h.Transaction.Get)
	t.POST("/receive", h.Transaction.Receive)
	t.POST("/issue", h.Transaction.Issue)
	t.PUT("/:id", h.Transaction.Update)
	t.DELETE("/:id", h.Transaction.Delete)

	d := api.Group("/defects")
	d.GET("", h.Defect.List)
	d.POST("", h.Defect.Report)
	d.PATCH("/:id/status", h.Defect.UpdateStatus)
	d.DELETE("/:id", h.Defect.Delete)

	a := api.Group("/alerts")
	a.GET("", h.Alert.List)
	a.POST("/check", h.Alert.Check)
	a.POST("/ack-all", h.Alert.AcknowledgeAll)
	a.POST("/:id/ack", h.Alert.Acknowledge)
	a.DELETE("/acknowledged", h.Alert.ClearAcknowledged)
	a.DELETE("/:id", h.Alert.Delete)
	a.DELETE("", h.Alert.ClearAll)

	api.GET("/dashboard", h.Analytics.Dashboard)
	c := api.Group("/categories")
	c.GET("", h.Analytics.ListCategories)
	c.GET("/:name", h.Analytics.GetCategory)
	c.PUT("/:name/cost", h.Analytics.SetUnitCost)
	c.PATCH("/:name/active", h.Analytics.SetActive)

	api.GET("/export/:entity", h.Export.Download)

	u := api.Group("/users")
	u.GET("", h.User.List)
	u.POST("", h.User.Upsert)
	u.PATCH("/:id/role", h.User.SetRole)
	u.DELETE("/:id", h.User.Delete)

	return r
}
