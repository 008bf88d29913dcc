package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is anything that can report whether it is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health reports liveness with a plain "ok".  When DB is set it also
// pings the database and answers 503 if that fails.
type Health struct {
	DB Pinger
}

// Check handles GET /healthz.
func (h Health) Check(c echo.Context) error {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			return c.String(http.StatusServiceUnavailable, "database unavailable")
		}
	}
	return c.String(http.StatusOK, "ok")
}
