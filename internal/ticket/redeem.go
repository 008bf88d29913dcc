// Package ticket implements ticket redemption at the door: a scanned
// code is validated and a valid ticket is moved to the used state
// exactly once.
package ticket

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// ErrTicketNotFound is returned by a Store when no ticket has the code.
var ErrTicketNotFound = errors.New("ticket not found")

// Store is the persisted ticket collection.
//
// MarkUsed must be an atomic compare-and-set: it moves the ticket from
// the valid label to the used label and sets updated_at in one step,
// and reports false without changing anything when the ticket is no
// longer valid.  Two concurrent scans of one ticket can therefore never
// both succeed.
type Store interface {
	FindByCode(ctx context.Context, code int64) (*model.Ticket, error)
	MarkUsed(ctx context.Context, code int64, at time.Time) (bool, error)
}

// Notifier is told about every successful redemption.
type Notifier interface {
	TicketRedeemed(ctx context.Context, t model.Ticket) error
}

// Result is a successful redemption.
type Result struct {
	Ticket  model.Ticket
	Message string
}

// Redeemer runs the scan state machine against a Store.
type Redeemer struct {
	Store    Store
	Notifier Notifier
	Logger   *slog.Logger
	Now      func() time.Time
}

// NewRedeemer returns a Redeemer using the wall clock.  notifier may be nil.
func NewRedeemer(store Store, notifier Notifier, logger *slog.Logger) *Redeemer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redeemer{Store: store, Notifier: notifier, Logger: logger, Now: func() time.Time { return time.Now().UTC() }}
}

// Redeem validates rawCode and redeems the ticket.  Every rejection is a
// *Error; use KindOf or errors.Is with the Err* sentinels to inspect it.
func (r *Redeemer) Redeem(ctx context.Context, rawCode string) (Result, error) {
	code := strings.TrimSpace(rawCode)
	if code == "" {
		return Result{}, reject(KindMissingCode, code, "No ticket code provided in payload.")
	}
	numeric, err := strconv.ParseInt(code, 10, 64)
	if err != nil {
		return Result{}, reject(KindInvalidFormat, code, "Invalid ticket code: %s", code)
	}

	t, err := r.find(ctx, code, numeric)
	if err != nil {
		return Result{}, err
	}
	if err := evaluate(code, t); err != nil {
		return Result{}, err
	}

	at := r.Now()
	swapped, err := r.Store.MarkUsed(ctx, numeric, at)
	if err != nil {
		return Result{}, r.systemFailure(code, err)
	}
	if !swapped {
		// another scan got there first; report what it left behind
		t, err = r.find(ctx, code, numeric)
		if err != nil {
			return Result{}, err
		}
		if err := evaluate(code, t); err != nil {
			return Result{}, err
		}
		return Result{}, reject(KindAlreadyUsed, code, "This ticket has already been used.")
	}

	t.Status = LabelUsed
	t.UpdatedAt = at
	r.Logger.InfoContext(ctx, "ticket redeemed", "ticket_code", numeric)
	if r.Notifier != nil {
		if err := r.Notifier.TicketRedeemed(ctx, *t); err != nil {
			r.Logger.WarnContext(ctx, "redemption notification failed", "ticket_code", numeric, "error", err)
		}
	}
	return Result{Ticket: *t, Message: "Ticket is valid. Status updated for ticket " + code + "."}, nil
}

func (r *Redeemer) find(ctx context.Context, code string, numeric int64) (*model.Ticket, error) {
	t, err := r.Store.FindByCode(ctx, numeric)
	if errors.Is(err, ErrTicketNotFound) || (err == nil && t == nil) {
		return nil, reject(KindNotFound, code, "Ticket with code %s not found.", code)
	}
	if err != nil {
		return nil, r.systemFailure(code, err)
	}
	return t, nil
}

func (r *Redeemer) systemFailure(code string, err error) *Error {
	r.Logger.Error("ticket store failure", "ticket_code", code, "error", err)
	e := reject(KindSystemFailure, code, "Could not process ticket %s. Please try again.", code)
	e.Err = err
	return e
}

// evaluate returns nil only for a valid ticket.
func evaluate(code string, t *model.Ticket) error {
	switch ParseStatus(t.Status) {
	case StatusValid:
		return nil
	case StatusPending:
		return reject(KindNotYetConfirmed, code, "Ticket has not been confirmed yet. Please confirm payment first.")
	case StatusUsed:
		return reject(KindAlreadyUsed, code, "This ticket has already been used.")
	case StatusCancelled:
		return reject(KindCancelled, code, "This ticket has been cancelled and is no longer valid.")
	default:
		return reject(KindUnknownStatus, code, "Invalid ticket status: %s.", t.Status)
	}
}
