// Package repository holds the MySQL data access layer.  Sentinel errors
// declared here let handlers tell failure cases apart without looking at
// driver details.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrConflict is returned when a record cannot be changed or removed
	// because performances are scheduled for it.
	ErrConflict = errors.New("conflict")
	// ErrDuplicateName is returned when a theater, category or genre name is taken.
	ErrDuplicateName = errors.New("name already exists")
	// ErrInUse is returned when a record is still referenced by others.
	ErrInUse = errors.New("record is in use")
	// ErrUnknownReference is returned when a write points at a missing row.
	ErrUnknownReference = errors.New("referenced record not found")
	// ErrTheaterNotFound is returned when a theater lookup yields no rows.
	ErrTheaterNotFound = errors.New("theater not found")
	// ErrCategoryNotFound is returned when a category lookup yields no rows.
	ErrCategoryNotFound = errors.New("seat category not found")
	// ErrGenreNotFound is returned when a genre lookup yields no rows.
	ErrGenreNotFound = errors.New("genre not found")
	// ErrShowNotFound is returned when a show lookup yields no rows.
	ErrShowNotFound = errors.New("show not found")
)

// Specific forms of ErrConflict and ErrInUse.  They match their parent
// with errors.Is and carry a message fit for the API response.
var (
	ErrTheaterScheduled = &detailError{msg: "theater has scheduled performances and cannot be changed", kind: ErrConflict}
	ErrShowScheduled    = &detailError{msg: "show has performances and cannot be deleted", kind: ErrConflict}
	ErrCategoryInUse    = &detailError{msg: "seat category is assigned to seats", kind: ErrInUse}
	ErrGenreInUse       = &detailError{msg: "genre is assigned to shows", kind: ErrInUse}
)

type detailError struct {
	msg  string
	kind error
}

func (e *detailError) Error() string        { return e.msg }
func (e *detailError) Is(target error) bool { return target == e.kind }

// MySQL server error numbers the repositories translate.
const (
	errDupEntry        = 1062
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
)

// translate maps driver errors onto the sentinels above and passes
// everything else through unchanged.
func translate(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case errDupEntry:
		return ErrDuplicateName
	case errRowIsReferenced:
		return ErrInUse
	case errNoReferencedRow:
		return ErrUnknownReference
	}
	return err
}
