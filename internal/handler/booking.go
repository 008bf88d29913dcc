package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagex-boxoffice/internal/booking"
)

// BookingHandler lists bookings for the box office.
type BookingHandler struct {
	Bookings BookingStore
}

// NewBookingHandler returns a BookingHandler backed by bookings.
func NewBookingHandler(bookings BookingStore) *BookingHandler {
	if bookings == nil {
		panic("nil booking store passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

// List handles GET /v1/bookings?q=&status=&date=.  status is one of all,
// processing, completed or cancelled; date is YYYY-MM-DD.
func (h *BookingHandler) List(c echo.Context) error {
	group, ok := booking.ParseStatusGroup(c.QueryParam("status"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	f := booking.Filter{Keyword: c.QueryParam("q"), Status: group}
	if raw := c.QueryParam("date"); raw != "" {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		f.Date = &d
	}
	list, err := h.Bookings.List(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
