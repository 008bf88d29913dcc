package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagex-boxoffice/internal/seatmap"
	"github.com/iliyamo/stagex-boxoffice/internal/session"
)

// EditorHandler exposes the seat map editor over HTTP.  Each call loads
// the session, applies one editor operation and stores the result.
type EditorHandler struct {
	Sessions   session.Store
	Theaters   TheaterStore
	Seats      SeatStore
	Categories CategoryStore
	Purge      Purger
}

// NewEditorHandler wires the editor to its session store and catalogue.
// It panics on a nil store.
func NewEditorHandler(sessions session.Store, theaters TheaterStore, seats SeatStore, categories CategoryStore, purge Purger) *EditorHandler {
	if sessions == nil || theaters == nil || seats == nil || categories == nil {
		panic("nil dependency passed to NewEditorHandler")
	}
	return &EditorHandler{Sessions: sessions, Theaters: theaters, Seats: seats, Categories: categories, Purge: purge}
}

type editorResponse struct {
	SessionID string          `json:"session_id"`
	Session   seatmap.Session `json:"session"`
	Report    *seatmap.Report `json:"report,omitempty"`
}

type previewRequest struct {
	Rows int `json:"rows" validate:"required,min=1"`
	Cols int `json:"cols" validate:"required,min=1,max=100"`
}

type toggleRequest struct {
	RowChar    string `json:"row_char" validate:"required"`
	SeatNumber int    `json:"seat_number" validate:"required,min=1"`
}

type selectRangeRequest struct {
	Row   string `json:"row" validate:"required"`
	Start int    `json:"start" validate:"gte=0"`
	End   int    `json:"end" validate:"gte=0"`
}

type applyCategoryRequest struct {
	CategoryID uint64 `json:"category_id" validate:"required"`
}

type saveRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// Create handles POST /v1/editor/sessions: an empty session for a new theater.
func (h *EditorHandler) Create(c echo.Context) error {
	s := seatmap.NewSession()
	id, err := h.Sessions.Create(c.Request().Context(), s)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, editorResponse{SessionID: id, Session: s})
}

// LoadTheater handles POST /v1/editor/sessions/theaters/:id.  A theater
// that already has performances opens read-only.
func (h *EditorHandler) LoadTheater(c echo.Context) error {
	theaterID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theater id"})
	}
	ctx := c.Request().Context()
	t, err := h.Theaters.GetByID(ctx, theaterID)
	if err != nil {
		return respondError(c, err)
	}
	seats, err := h.Seats.GetByTheater(ctx, theaterID)
	if err != nil {
		return respondError(c, err)
	}
	s, err := seatmap.Load(t.ID, seats, !t.CanDelete)
	if err != nil {
		return respondError(c, err)
	}
	id, err := h.Sessions.Create(ctx, s)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, editorResponse{SessionID: id, Session: s})
}

// Get handles GET /v1/editor/sessions/:sid.  Category references are
// refreshed so renamed or recolored categories show up immediately.
func (h *EditorHandler) Get(c echo.Context) error {
	return h.apply(c, func(ctx context.Context, s seatmap.Session) (seatmap.Session, *seatmap.Report, error) {
		cats, err := h.Categories.List(ctx)
		if err != nil {
			return s, nil, err
		}
		return seatmap.RebindCategories(s, cats), nil, nil
	})
}

// Preview handles POST /v1/editor/sessions/:sid/preview.
func (h *EditorHandler) Preview(c echo.Context) error {
	var body previewRequest
	if ok, err := bindValid(c, &body); !ok {
		return err
	}
	return h.apply(c, func(_ context.Context, s seatmap.Session) (seatmap.Session, *seatmap.Report, error) {
		out, err := seatmap.PreviewGrid(s, body.Rows, body.Cols)
		return out, nil, err
	})
}

// Toggle handles POST /v1/editor/sessions/:sid/toggle.
func (h *EditorHandler) Toggle(c echo.Context) error {
	var body toggleRequest
	if ok, err := bindValid(c, &body); !ok {
		return err
	}
	return h.apply(c, func(_ context.Context, s seatmap.Session) (seatmap.Session, *seatmap.Report, error) {
		out, err := seatmap.ToggleSeat(s, body.RowChar, body.SeatNumber)
		return out, nil, err
	})
}

// SelectRange handles POST /v1/editor/sessions/:sid/select-range.
func (h *EditorHandler) SelectRange(c echo.Context) error {
	var body selectRangeRequest
	if ok, err := bindValid(c, &body); !ok {
		return err
	}
	return h.apply(c, func(_ context.Context, s seatmap.Session) (seatmap.Session, *seatmap.Report, error) {
		out, rep := seatmap.SelectRange(s, body.Row, body.Start, body.End)
		return out, &rep, nil
	})
}

// Remove handles POST /v1/editor/sessions/:sid/remove.
func (h *EditorHandler) Remove(c echo.Context) error {
	return h.apply(c, func(_ context.Context, s seatmap.Session) (seatmap.Session, *seatmap.Report, error) {
		out, rep, err := seatmap.RemoveSelectedSeats(s)
		return out, &rep, err
	})
}

// ApplyCategory handles POST /v1/editor/sessions/:sid/apply-category.
func (h *EditorHandler) ApplyCategory(c echo.Context) error {
	var body applyCategoryRequest
	if ok, err := bindValid(c, &body); !ok {
		return err
	}
	return h.apply(c, func(ctx context.Context, s seatmap.Session) (seatmap.Session, *seatmap.Report, error) {
		cat, err := h.Categories.GetByID(ctx, body.CategoryID)
		if err != nil {
			return s, nil, err
		}
		out, rep, err := seatmap.ApplyCategory(s, *cat)
		return out, &rep, err
	})
}

// Save handles POST /v1/editor/sessions/:sid/save.  A create-mode session
// inserts a new theater (201) and turns into an edit session for it; an
// edit session replaces the theater's name and seats (200).
func (h *EditorHandler) Save(c echo.Context) error {
	var body saveRequest
	if ok, err := bindValid(c, &body); !ok {
		return err
	}
	sid := c.Param("sid")
	ctx := c.Request().Context()
	s, err := h.Sessions.Get(ctx, sid)
	if err != nil {
		return respondError(c, err)
	}
	name, err := seatmap.ValidateForSave(s, body.Name)
	if err != nil {
		return respondError(c, err)
	}

	var excludeID uint64
	if !s.IsCreating() {
		excludeID = *s.TheaterID
	}
	if exists, err := h.Theaters.NameExists(ctx, name, excludeID); err != nil {
		return respondError(c, err)
	} else if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "theater name already exists"})
	}

	status := http.StatusOK
	var theaterID uint64
	if s.IsCreating() {
		t, err := h.Theaters.CreateWithSeats(ctx, name, s.Seats)
		if err != nil {
			return respondError(c, err)
		}
		status, theaterID = http.StatusCreated, t.ID
	} else {
		theaterID = *s.TheaterID
		if err := h.Theaters.UpdateStructure(ctx, theaterID, name, s.Seats); err != nil {
			return respondError(c, err)
		}
	}
	h.Purge.purge(ctx)

	// continue editing against what was stored, with fresh seat ids
	seats, err := h.Seats.GetByTheater(ctx, theaterID)
	if err != nil {
		return respondError(c, err)
	}
	next, err := seatmap.Load(theaterID, seats, false)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Sessions.Put(ctx, sid, next); err != nil {
		return respondError(c, err)
	}
	return c.JSON(status, editorResponse{SessionID: sid, Session: next})
}

// Delete handles DELETE /v1/editor/sessions/:sid.
func (h *EditorHandler) Delete(c echo.Context) error {
	if err := h.Sessions.Delete(c.Request().Context(), c.Param("sid")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type editorOp func(ctx context.Context, s seatmap.Session) (seatmap.Session, *seatmap.Report, error)

// apply runs op against the stored session.  The session is only written
// back when op succeeds.
func (h *EditorHandler) apply(c echo.Context, op editorOp) error {
	sid := c.Param("sid")
	ctx := c.Request().Context()
	s, err := h.Sessions.Get(ctx, sid)
	if err != nil {
		return respondError(c, err)
	}
	next, rep, err := op(ctx, s)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Sessions.Put(ctx, sid, next); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, editorResponse{SessionID: sid, Session: next, Report: rep})
}
