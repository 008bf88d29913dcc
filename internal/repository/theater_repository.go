package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// TheaterRepo manages theaters and, through SeatRepo, their seat layout.
type TheaterRepo struct {
	db    *sql.DB
	seats *SeatRepo
}

// NewTheaterRepo constructs a TheaterRepo.  Seat writes go through seats
// inside the theater's transaction.
func NewTheaterRepo(db *sql.DB, seats *SeatRepo) *TheaterRepo {
	return &TheaterRepo{db: db, seats: seats}
}

// theaterSelect derives can_delete from the number of performances held in
// the theater.
const theaterSelect = `SELECT t.theater_id, t.name, t.total_seats, t.status,
       (SELECT COUNT(*) FROM performances p WHERE p.theater_id = t.theater_id) AS performances
FROM theaters t`

func scanTheater(sc interface{ Scan(...any) error }) (model.Theater, error) {
	var (
		t     model.Theater
		count int
	)
	if err := sc.Scan(&t.ID, &t.Name, &t.TotalSeats, &t.Status, &count); err != nil {
		return model.Theater{}, err
	}
	t.CanDelete = count == 0
	return t, nil
}

// List returns all theaters ordered by name.
func (r *TheaterRepo) List(ctx context.Context) ([]model.Theater, error) {
	rows, err := r.db.QueryContext(ctx, theaterSelect+` ORDER BY t.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Theater{}
	for rows.Next() {
		t, err := scanTheater(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns ErrTheaterNotFound when the id is unknown.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (*model.Theater, error) {
	t, err := scanTheater(r.db.QueryRowContext(ctx, theaterSelect+` WHERE t.theater_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}
	return &t, nil
}

// NameExists reports whether another theater already uses name, ignoring
// case and surrounding spaces.  excludeID is the theater being edited, or 0.
func (r *TheaterRepo) NameExists(ctx context.Context, name string, excludeID uint64) (bool, error) {
	const q = `SELECT COUNT(*) FROM theaters WHERE LOWER(TRIM(name)) = LOWER(?) AND theater_id <> ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, strings.TrimSpace(name), excludeID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateWithSeats inserts a theater and its seats in one transaction.
// The new theater starts in the active status with total_seats equal to
// the number of seats.
func (r *TheaterRepo) CreateWithSeats(ctx context.Context, name string, seats []model.Seat) (_ *model.Theater, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	t := model.Theater{Name: name, TotalSeats: len(seats), Status: model.TheaterStatusActive, CanDelete: true}
	res, err := tx.ExecContext(ctx, `INSERT INTO theaters (name, total_seats, status) VALUES (?, ?, ?)`,
		t.Name, t.TotalSeats, t.Status)
	if err != nil {
		return nil, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	t.ID = uint64(id)

	if err = r.seats.CreateBulkTx(ctx, tx, t.ID, seats); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateStructure renames a theater and replaces its seats in one
// transaction.  It fails with ErrTheaterScheduled once performances exist,
// since sold tickets point at the current seats.
func (r *TheaterRepo) UpdateStructure(ctx context.Context, id uint64, name string, seats []model.Seat) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = theaterLock.lock(ctx, tx, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE theaters SET name = ?, total_seats = ? WHERE theater_id = ?`,
		name, len(seats), id); err != nil {
		return translate(err)
	}
	if err = r.seats.DeleteByTheaterTx(ctx, tx, id); err != nil {
		return err
	}
	if err = r.seats.CreateBulkTx(ctx, tx, id, seats); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a theater with its seats.  Theaters with performances
// are kept and ErrTheaterScheduled is returned.
func (r *TheaterRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = theaterLock.lock(ctx, tx, id); err != nil {
		return err
	}
	if err = r.seats.DeleteByTheaterTx(ctx, tx, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM theaters WHERE theater_id = ?`, id); err != nil {
		return translate(err)
	}
	return tx.Commit()
}

// unscheduled describes a table whose rows may only change while no
// performance references them.
type unscheduled struct {
	table, key string
	notFound   error
	scheduled  error
}

var (
	theaterLock = unscheduled{table: "theaters", key: "theater_id", notFound: ErrTheaterNotFound, scheduled: ErrTheaterScheduled}
	showLock    = unscheduled{table: "shows", key: "show_id", notFound: ErrShowNotFound, scheduled: ErrShowScheduled}
)

// lock takes a row lock on id and checks that no performance references it.
func (u unscheduled) lock(ctx context.Context, tx *sql.Tx, id uint64) error {
	var locked uint64
	err := tx.QueryRowContext(ctx, "SELECT "+u.key+" FROM "+u.table+" WHERE "+u.key+" = ? FOR UPDATE", id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return u.notFound
	}
	if err != nil {
		return err
	}
	n, err := countPerformances(ctx, tx, u.key, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return u.scheduled
	}
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// countPerformances counts performances whose key column equals id.
func countPerformances(ctx context.Context, q queryRower, key string, id uint64) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM performances WHERE "+key+" = ?", id).Scan(&n)
	return n, err
}
