package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TheaterHandler lists, inspects and deletes theaters.  Creating and
// restructuring go through the editor.
type TheaterHandler struct {
	Theaters TheaterStore
	Seats    SeatStore
	Purge    Purger
}

// NewTheaterHandler returns a TheaterHandler over the given stores.
func NewTheaterHandler(theaters TheaterStore, seats SeatStore, purge Purger) *TheaterHandler {
	if theaters == nil || seats == nil {
		panic("nil store passed to NewTheaterHandler")
	}
	return &TheaterHandler{Theaters: theaters, Seats: seats, Purge: purge}
}

// List handles GET /v1/theaters.
func (h *TheaterHandler) List(c echo.Context) error {
	theaters, err := h.Theaters.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, theaters)
}

// Seats handles GET /v1/theaters/:id/seats.
func (h *TheaterHandler) Seats(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theater id"})
	}
	ctx := c.Request().Context()
	t, err := h.Theaters.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	seats, err := h.Seats.GetByTheater(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"theater": t, "seats": seats})
}

// Delete handles DELETE /v1/theaters/:id.  Theaters with performances
// answer 409.
func (h *TheaterHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theater id"})
	}
	ctx := c.Request().Context()
	if err := h.Theaters.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	h.Purge.purge(ctx)
	return c.NoContent(http.StatusNoContent)
}
