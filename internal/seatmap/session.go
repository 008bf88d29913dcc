// Package seatmap implements the theater structure editor: a physical
// seat list, the visual layout derived from it and the selection and
// category tools that operate on it.
//
// The editor is pure.  Every operation takes a Session and returns the
// updated Session; the input is never modified, so a failed operation
// leaves the caller's state exactly as it was.
package seatmap

import (
	"errors"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

var (
	// ErrInvalidDimensions is returned by PreviewGrid for non-positive
	// sizes or more rows than there are letters.
	ErrInvalidDimensions = errors.New("invalid row/column count")
	// ErrInvalidRow is returned when a seat carries a row label that is
	// not a single letter A-Z.
	ErrInvalidRow = errors.New("invalid row label")
	// ErrInvalidCategory is returned when a category without an id is applied.
	ErrInvalidCategory = errors.New("invalid seat category")
	// ErrReadOnly is returned by mutating operations on a read-only session.
	ErrReadOnly = errors.New("theater structure is read-only")
	// ErrSeatNotFound is returned when a toggled seat does not exist.
	ErrSeatNotFound = errors.New("seat not found")
	// ErrEmptyName is returned by ValidateForSave when no theater name is set.
	ErrEmptyName = errors.New("theater name is required")
	// ErrNoSeats is returned by ValidateForSave for an empty seat map.
	ErrNoSeats = errors.New("seat map is empty")
	// ErrMissingCategory is returned by ValidateForSave when a seat has no category.
	ErrMissingCategory = errors.New("every seat must have a category")
)

// NoticeNothingSelected is reported when an operation that needs a
// selection is invoked without one.
const NoticeNothingSelected = "nothing selected"

// SeatKey identifies a seat by its physical position.
type SeatKey struct {
	Row    string `json:"row_char"`
	Number int    `json:"seat_number"`
}

func keyOf(s model.Seat) SeatKey { return SeatKey{Row: s.RowChar, Number: s.SeatNumber} }

// Session is the state of one editing session.  TheaterID is nil while
// creating a new theater.  ReadOnly is set when the loaded theater can
// no longer be restructured.
type Session struct {
	TheaterID *uint64      `json:"theater_id"`
	ReadOnly  bool         `json:"read_only"`
	Seats     []model.Seat `json:"seats"`
	Selected  []SeatKey    `json:"selected"`
	Map       VisualMap    `json:"map"`
}

// Report describes the effect of a selection-oriented operation.
type Report struct {
	Count  int    `json:"count"`
	Notice string `json:"notice,omitempty"`
}

// NewSession returns an empty session in create mode.
func NewSession() Session {
	return BuildVisualMap(Session{Seats: []model.Seat{}})
}

// Load starts a session over stored seats.  Row labels are normalised;
// a label that is not a single letter fails the load.
func Load(theaterID uint64, seats []model.Seat, readOnly bool) (Session, error) {
	id := theaterID
	s := Session{TheaterID: &id, ReadOnly: readOnly, Seats: make([]model.Seat, 0, len(seats))}
	for _, seat := range seats {
		seat.RowChar = NormalizeRow(seat.RowChar)
		if _, ok := RowIndex(seat.RowChar); !ok {
			return Session{}, ErrInvalidRow
		}
		s.Seats = append(s.Seats, seat)
	}
	return BuildVisualMap(s), nil
}

// IsCreating reports whether the session builds a new theater.
func (s Session) IsCreating() bool { return s.TheaterID == nil }

// clone copies the seat list and selection so the result can be changed
// freely.  Category references are shared; they are never mutated.
func (s Session) clone() Session {
	out := s
	out.Seats = append([]model.Seat(nil), s.Seats...)
	out.Selected = append([]SeatKey(nil), s.Selected...)
	return out
}

func (s Session) selectedSet() map[SeatKey]struct{} {
	set := make(map[SeatKey]struct{}, len(s.Selected))
	for _, k := range s.Selected {
		set[k] = struct{}{}
	}
	return set
}

func (s Session) seatIndex(k SeatKey) int {
	for i, seat := range s.Seats {
		if seat.RowChar == k.Row && seat.SeatNumber == k.Number {
			return i
		}
	}
	return -1
}
