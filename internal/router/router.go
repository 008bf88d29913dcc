// Package router registers HTTP routes and their middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagex-boxoffice/internal/handler"
)

// RegisterRoutes registers the unauthenticated health check.
func RegisterRoutes(e *echo.Echo, h handler.Health) {
	e.GET("/healthz", h.Check)
}

// RegisterScan registers the door scanner endpoints.  Scanners do not
// carry staff tokens; the token bucket is their only guard.  The legacy
// /api/TicketScan path is what deployed scanner apps already call.
func RegisterScan(e *echo.Echo, h *handler.TicketScanHandler, limit echo.MiddlewareFunc) {
	e.POST("/api/TicketScan", h.Scan, limit)
	e.POST("/v1/tickets/scan", h.Scan, limit)
}
