package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// ShowHandler manages the show catalogue.
type ShowHandler struct {
	Shows ShowStore
	Purge Purger
}

// NewShowHandler returns a ShowHandler backed by shows.
func NewShowHandler(shows ShowStore, purge Purger) *ShowHandler {
	if shows == nil {
		panic("nil show store passed to NewShowHandler")
	}
	return &ShowHandler{Shows: shows, Purge: purge}
}

type showRequest struct {
	Title           string   `json:"title" validate:"required,max=255"`
	Director        string   `json:"director" validate:"required,max=255"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,min=1"`
	PosterImageURL  string   `json:"poster_image_url" validate:"required,max=500"`
	Description     string   `json:"description" validate:"required"`
	GenreIDs        []uint64 `json:"genre_ids" validate:"dive,min=1"`
}

// List handles GET /v1/shows?q=&genre_id=.
func (h *ShowHandler) List(c echo.Context) error {
	var genreID uint64
	if raw := c.QueryParam("genre_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre_id"})
		}
		genreID = id
	}
	shows, err := h.Shows.List(c.Request().Context(), c.QueryParam("q"), genreID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, shows)
}

// Create handles POST /v1/shows.
func (h *ShowHandler) Create(c echo.Context) error {
	return h.save(c, 0, http.StatusCreated)
}

// Update handles PUT /v1/shows/:id.
func (h *ShowHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	return h.save(c, id, http.StatusOK)
}

// Delete handles DELETE /v1/shows/:id.  Shows with performances answer 409.
func (h *ShowHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx := c.Request().Context()
	if err := h.Shows.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	h.Purge.purge(ctx)
	return c.NoContent(http.StatusNoContent)
}

// save writes the show; every save puts it back in the upcoming status.
func (h *ShowHandler) save(c echo.Context, id uint64, status int) error {
	var body showRequest
	if ok, err := bindValid(c, &body); !ok {
		return err
	}
	s := &model.Show{
		ID:              id,
		Title:           strings.TrimSpace(body.Title),
		Director:        strings.TrimSpace(body.Director),
		DurationMinutes: body.DurationMinutes,
		PosterImageURL:  strings.TrimSpace(body.PosterImageURL),
		Description:     strings.TrimSpace(body.Description),
		Status:          model.ShowStatusUpcoming,
	}
	if s.Title == "" || s.Director == "" || s.PosterImageURL == "" || s.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, director, poster_image_url and description are required"})
	}

	ctx := c.Request().Context()
	if err := h.Shows.Save(ctx, s, uniqueIDs(body.GenreIDs)); err != nil {
		return respondError(c, err)
	}
	h.Purge.purge(ctx)
	saved, err := h.Shows.GetByID(ctx, s.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status, saved)
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
