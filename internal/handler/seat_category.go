package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
	"github.com/iliyamo/stagex-boxoffice/internal/palette"
)

// SeatCategoryHandler manages seat categories (price tiers).
type SeatCategoryHandler struct {
	Categories CategoryStore
	Purge      Purger
}

// NewSeatCategoryHandler returns a SeatCategoryHandler backed by categories.
// purge runs after every successful write.
func NewSeatCategoryHandler(categories CategoryStore, purge Purger) *SeatCategoryHandler {
	if categories == nil {
		panic("nil category store passed to NewSeatCategoryHandler")
	}
	return &SeatCategoryHandler{Categories: categories, Purge: purge}
}

type categoryRequest struct {
	Name      string  `json:"category_name" validate:"required,max=100"`
	BasePrice float64 `json:"base_price" validate:"gte=0"`
}

// List handles GET /v1/seat-categories.
func (h *SeatCategoryHandler) List(c echo.Context) error {
	cats, err := h.Categories.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

// Create handles POST /v1/seat-categories.  The display color is generated
// so that it stays distinct from every existing category.
func (h *SeatCategoryHandler) Create(c echo.Context) error {
	var body categoryRequest
	if ok, err := bindValid(c, &body); !ok {
		return err
	}
	ctx := c.Request().Context()
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_name is required"})
	}

	// names are unique ignoring case
	if exists, err := h.Categories.NameExists(ctx, name, 0); err != nil {
		return respondError(c, err)
	} else if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat category name already exists"})
	}

	existing, err := h.Categories.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	taken := make([]string, 0, len(existing))
	for _, cat := range existing {
		taken = append(taken, cat.ColorClass)
	}

	cat := &model.SeatCategory{Name: name, BasePrice: body.BasePrice, ColorClass: palette.Generate(taken, nil)}
	if err := h.Categories.Create(ctx, cat); err != nil {
		return respondError(c, err)
	}
	h.Purge.purge(ctx)
	return c.JSON(http.StatusCreated, cat)
}

// Update handles PUT /v1/seat-categories/:id.  Only name and price change;
// the color stays what it was.
func (h *SeatCategoryHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}
	var body categoryRequest
	if ok, err := bindValid(c, &body); !ok {
		return err
	}
	ctx := c.Request().Context()
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_name is required"})
	}

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if exists, err := h.Categories.NameExists(ctx, name, id); err != nil {
		return respondError(c, err)
	} else if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat category name already exists"})
	}

	cat.Name, cat.BasePrice = name, body.BasePrice
	if err := h.Categories.Update(ctx, cat); err != nil {
		return respondError(c, err)
	}
	h.Purge.purge(ctx)
	return c.JSON(http.StatusOK, cat)
}

// Delete handles DELETE /v1/seat-categories/:id.
func (h *SeatCategoryHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}
	ctx := c.Request().Context()
	if err := h.Categories.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	h.Purge.purge(ctx)
	return c.NoContent(http.StatusNoContent)
}
