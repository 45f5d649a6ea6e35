package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports database and cache reachability.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler builds a health handler. cache may be nil.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Healthz godoc
// @Summary Liveness and dependency check
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := map[string]string{"status": "ok", "database": "ok", "cache": "ok"}

	if err := h.db.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
		body["database"] = err.Error()
	}
	if h.cache == nil {
		body["cache"] = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		// the cache fails open, so it degrades the service but does not fail it
		body["cache"] = err.Error()
		if status == http.StatusOK {
			body["status"] = "degraded"
		}
	}
	return c.JSON(status, body)
}
