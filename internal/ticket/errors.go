package ticket

import (
	"errors"
	"fmt"
)

// Kind classifies a rejected scan.
type Kind int

const (
	KindMissingCode Kind = iota + 1
	KindInvalidFormat
	KindNotFound
	KindNotYetConfirmed
	KindAlreadyUsed
	KindCancelled
	KindUnknownStatus
	KindSystemFailure
)

func (k Kind) String() string {
	switch k {
	case KindMissingCode:
		return "missing_code"
	case KindInvalidFormat:
		return "invalid_format"
	case KindNotFound:
		return "not_found"
	case KindNotYetConfirmed:
		return "not_yet_confirmed"
	case KindAlreadyUsed:
		return "already_used"
	case KindCancelled:
		return "cancelled"
	case KindUnknownStatus:
		return "unknown_status"
	case KindSystemFailure:
		return "system_failure"
	default:
		return "unknown"
	}
}

// Error is returned for every rejected redemption.  Message is meant for
// the person operating the scanner.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind, so errors.Is(err, ErrAlreadyUsed)
// works regardless of code and message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrMissingCode     = &Error{Kind: KindMissingCode}
	ErrInvalidFormat   = &Error{Kind: KindInvalidFormat}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrNotYetConfirmed = &Error{Kind: KindNotYetConfirmed}
	ErrAlreadyUsed     = &Error{Kind: KindAlreadyUsed}
	ErrCancelled       = &Error{Kind: KindCancelled}
	ErrUnknownStatus   = &Error{Kind: KindUnknownStatus}
	ErrSystemFailure   = &Error{Kind: KindSystemFailure}
)

// KindOf extracts the kind of a redemption error, or 0 when err is not one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func reject(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}
