package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagex-boxoffice/internal/booking"
	"github.com/iliyamo/stagex-boxoffice/internal/logger"
	"github.com/iliyamo/stagex-boxoffice/internal/model"
	"github.com/iliyamo/stagex-boxoffice/internal/repository"
	"github.com/iliyamo/stagex-boxoffice/internal/seatmap"
	"github.com/iliyamo/stagex-boxoffice/internal/session"
)

// TheaterStore is the part of repository.TheaterRepo the handlers use.
type TheaterStore interface {
	List(ctx context.Context) ([]model.Theater, error)
	GetByID(ctx context.Context, id uint64) (*model.Theater, error)
	NameExists(ctx context.Context, name string, excludeID uint64) (bool, error)
	CreateWithSeats(ctx context.Context, name string, seats []model.Seat) (*model.Theater, error)
	UpdateStructure(ctx context.Context, id uint64, name string, seats []model.Seat) error
	Delete(ctx context.Context, id uint64) error
}

// SeatStore is the part of repository.SeatRepo the handlers use.
type SeatStore interface {
	GetByTheater(ctx context.Context, theaterID uint64) ([]model.Seat, error)
}

// CategoryStore is the part of repository.SeatCategoryRepo the handlers use.
type CategoryStore interface {
	List(ctx context.Context) ([]model.SeatCategory, error)
	GetByID(ctx context.Context, id uint64) (*model.SeatCategory, error)
	NameExists(ctx context.Context, name string, excludeID uint64) (bool, error)
	Create(ctx context.Context, c *model.SeatCategory) error
	Update(ctx context.Context, c *model.SeatCategory) error
	Delete(ctx context.Context, id uint64) error
}

// GenreStore is the part of repository.GenreRepo the handlers use.
type GenreStore interface {
	List(ctx context.Context) ([]model.Genre, error)
	GetByID(ctx context.Context, id uint64) (*model.Genre, error)
	NameExists(ctx context.Context, name string, excludeID uint64) (bool, error)
	Create(ctx context.Context, g *model.Genre) error
	Update(ctx context.Context, g *model.Genre) error
	Delete(ctx context.Context, id uint64) error
}

// ShowStore is the part of repository.ShowRepo the handlers use.
type ShowStore interface {
	List(ctx context.Context, keyword string, genreID uint64) ([]model.Show, error)
	GetByID(ctx context.Context, id uint64) (*model.Show, error)
	Save(ctx context.Context, s *model.Show, genreIDs []uint64) error
	Delete(ctx context.Context, id uint64) error
}

// BookingStore is the part of repository.BookingRepo the handlers use.
type BookingStore interface {
	List(ctx context.Context, f booking.Filter) ([]model.Booking, error)
}

// Purger drops cached list responses after a write.  A nil Purger does nothing.
type Purger func(ctx context.Context) error

func (p Purger) purge(ctx context.Context) {
	if p == nil {
		return
	}
	if err := p(ctx); err != nil {
		logger.WithContext(ctx).Warn("cache purge failed", "error", err)
	}
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// respondError maps domain and repository errors onto HTTP responses.
func respondError(c echo.Context, err error) error {
	status, msg := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, seatmap.ErrInvalidDimensions),
		errors.Is(err, seatmap.ErrInvalidRow),
		errors.Is(err, seatmap.ErrInvalidCategory),
		errors.Is(err, seatmap.ErrEmptyName),
		errors.Is(err, seatmap.ErrNoSeats),
		errors.Is(err, seatmap.ErrMissingCategory),
		errors.Is(err, repository.ErrUnknownReference):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, seatmap.ErrReadOnly):
		status, msg = http.StatusConflict, repository.ErrTheaterScheduled.Error()
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrDuplicateName),
		errors.Is(err, repository.ErrInUse):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, seatmap.ErrSeatNotFound),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, repository.ErrTheaterNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrGenreNotFound),
		errors.Is(err, repository.ErrShowNotFound):
		status, msg = http.StatusNotFound, err.Error()
	default:
		logger.WithContext(c.Request().Context()).Error("request failed", "path", c.Path(), "error", err)
	}
	return c.JSON(status, echo.Map{"error": msg})
}
