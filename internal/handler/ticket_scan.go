package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagex-boxoffice/internal/logger"
	"github.com/iliyamo/stagex-boxoffice/internal/ticket"
)

// scanResponse is the envelope scanner apps expect for every outcome.
type scanResponse struct {
	Code      string `json:"code"`
	CodeValue string `json:"codevalue"`
}

func barcode(c echo.Context, status int, msg string) error {
	return c.JSON(status, scanResponse{Code: "BARCODE", CodeValue: msg})
}

// TicketScanHandler serves the door scanners.
type TicketScanHandler struct {
	Redeemer *ticket.Redeemer
}

// NewTicketScanHandler returns a scan handler that redeems through r.
func NewTicketScanHandler(r *ticket.Redeemer) *TicketScanHandler {
	if r == nil {
		panic("nil redeemer passed to NewTicketScanHandler")
	}
	return &TicketScanHandler{Redeemer: r}
}

// Scan handles POST /api/TicketScan and POST /v1/tickets/scan.
func (h *TicketScanHandler) Scan(c echo.Context) error {
	var req ticket.ScanRequest
	if err := c.Bind(&req); err != nil {
		// an unreadable body carries no code either
		req = ticket.ScanRequest{}
	}

	code, field, err := ticket.ResolveCode(req)
	if err != nil {
		return h.reject(c, err)
	}

	ctx := c.Request().Context()
	res, err := h.Redeemer.Redeem(ctx, code)
	if err != nil {
		return h.reject(c, err)
	}
	logger.WithContext(ctx).Debug("scan accepted", "field", field, "ticket_code", res.Ticket.Code)
	return barcode(c, http.StatusOK, res.Message)
}

func (h *TicketScanHandler) reject(c echo.Context, err error) error {
	msg := "Could not process ticket. Please try again."
	var e *ticket.Error
	if errors.As(err, &e) {
		msg = e.Message
	}

	status := http.StatusBadRequest
	switch ticket.KindOf(err) {
	case ticket.KindNotFound:
		status = http.StatusNotFound
	case ticket.KindSystemFailure, 0:
		status = http.StatusInternalServerError
	}
	logger.WithContext(c.Request().Context()).Info("scan rejected", "kind", ticket.KindOf(err).String())
	return barcode(c, status, msg)
}
