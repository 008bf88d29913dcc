package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// GenreHandler manages show genres.
type GenreHandler struct {
	Genres GenreStore
	Purge  Purger
}

// NewGenreHandler returns a GenreHandler backed by genres.
func NewGenreHandler(genres GenreStore, purge Purger) *GenreHandler {
	if genres == nil {
		panic("nil genre store passed to NewGenreHandler")
	}
	return &GenreHandler{Genres: genres, Purge: purge}
}

type genreRequest struct {
	Name string `json:"genre_name" validate:"required,max=100"`
}

// List handles GET /v1/genres.
func (h *GenreHandler) List(c echo.Context) error {
	genres, err := h.Genres.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, genres)
}

// Create handles POST /v1/genres.
func (h *GenreHandler) Create(c echo.Context) error {
	name, ok, err := h.bindName(c, 0)
	if !ok {
		return err
	}
	ctx := c.Request().Context()
	g := &model.Genre{Name: name}
	if err := h.Genres.Create(ctx, g); err != nil {
		return respondError(c, err)
	}
	h.Purge.purge(ctx)
	return c.JSON(http.StatusCreated, g)
}

// Update handles PUT /v1/genres/:id.
func (h *GenreHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	name, ok, err := h.bindName(c, id)
	if !ok {
		return err
	}
	ctx := c.Request().Context()
	g := &model.Genre{ID: id, Name: name}
	if err := h.Genres.Update(ctx, g); err != nil {
		return respondError(c, err)
	}
	h.Purge.purge(ctx)
	return c.JSON(http.StatusOK, g)
}

// Delete handles DELETE /v1/genres/:id.  Genres tagged on shows answer 409.
func (h *GenreHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	ctx := c.Request().Context()
	if err := h.Genres.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	h.Purge.purge(ctx)
	return c.NoContent(http.StatusNoContent)
}

// bindName reads and trims the genre name and rejects one that another
// genre already uses, ignoring case.
func (h *GenreHandler) bindName(c echo.Context, excludeID uint64) (string, bool, error) {
	var body genreRequest
	if ok, err := bindValid(c, &body); !ok {
		return "", false, err
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return "", false, c.JSON(http.StatusBadRequest, echo.Map{"error": "genre_name is required"})
	}
	exists, err := h.Genres.NameExists(c.Request().Context(), name, excludeID)
	if err != nil {
		return "", false, respondError(c, err)
	}
	if exists {
		return "", false, c.JSON(http.StatusConflict, echo.Map{"error": "genre '" + name + "' already exists"})
	}
	return name, true, nil
}
