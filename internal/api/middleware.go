package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/service"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderUser      = "X-User"
	HeaderRole      = "X-User-Role"

	ctxRequestID = "request_id"
	ctxActor     = "actor"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"latency", time.Since(start),
			"request_id", c.GetString(ctxRequestID),
		}
		if a, ok := c.Get(ctxActor); ok {
			attrs = append(attrs, "user", a.(service.Actor).Name)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "err", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request failed", attrs...)
		case status >= http.StatusBadRequest:
			log.Warn("request rejected", attrs...)
		default:
			log.Info("request", attrs...)
		}
	}
}

// Identity reads the caller from headers set by the fronting proxy.
// A missing role means viewer; an unknown role is kept and denied later.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetHeader(HeaderUser))
		if name == "" {
			name = "anonymous"
		}
		raw := strings.TrimSpace(c.GetHeader(HeaderRole))
		role, ok := users.ParseRole(raw)
		switch {
		case raw == "":
			role = users.RoleViewer
		case !ok:
			role = users.Role(raw)
		}
		c.Set(ctxActor, service.Actor{Name: name, Role: role})
		c.Next()
	}
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, X-User, X-User-Role")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func actorOf(c *gin.Context) service.Actor {
	if a, ok := c.Get(ctxActor); ok {
		return a.(service.Actor)
	}
	return service.Actor{Name: "anonymous", Role: users.RoleViewer}
}
