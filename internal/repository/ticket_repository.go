package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
	"github.com/iliyamo/stagex-boxoffice/internal/ticket"
)

// TicketRepo is the MySQL ticket.Store.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

var _ ticket.Store = (*TicketRepo)(nil)

// FindByCode returns ticket.ErrTicketNotFound for an unknown code.
func (r *TicketRepo) FindByCode(ctx context.Context, code int64) (*model.Ticket, error) {
	const q = `SELECT ticket_id, ticket_code, status, updated_at FROM tickets WHERE ticket_code = ?`
	var (
		t       model.Ticket
		updated sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, code).Scan(&t.ID, &t.Code, &t.Status, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, err
	}
	t.UpdatedAt = updated.Time
	return &t, nil
}

// MarkUsed moves a valid ticket to used in a single conditional UPDATE.
// It reports false when the ticket was no longer valid.
func (r *TicketRepo) MarkUsed(ctx context.Context, code int64, at time.Time) (bool, error) {
	const q = `UPDATE tickets SET status = ?, updated_at = ? WHERE ticket_code = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, ticket.LabelUsed, at, code, ticket.LabelValid)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
