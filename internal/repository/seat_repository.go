package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// SeatRepo reads and writes the seats of a theater.  Writes only happen
// inside a theater transaction, so the write methods take a *sql.Tx.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// GetByTheater returns every seat of a theater with its category resolved,
// ordered by row then seat number.
func (r *SeatRepo) GetByTheater(ctx context.Context, theaterID uint64) ([]model.Seat, error) {
	const q = `SELECT s.seat_id, s.theater_id, s.category_id, s.row_char, s.seat_number, s.real_seat_number,
	                  c.category_name, c.base_price, c.color_class
	           FROM seats s
	           LEFT JOIN seat_categories c ON c.category_id = s.category_id
	           WHERE s.theater_id = ?
	           ORDER BY s.row_char, s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, theaterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := []model.Seat{}
	for rows.Next() {
		var (
			s     model.Seat
			catID sql.NullInt64
			name  sql.NullString
			price sql.NullFloat64
			color sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.TheaterID, &catID, &s.RowChar, &s.SeatNumber, &s.RealSeatNumber,
			&name, &price, &color); err != nil {
			return nil, err
		}
		if catID.Valid {
			id := uint64(catID.Int64)
			s.CategoryID = &id
			if name.Valid {
				s.Category = &model.SeatCategory{ID: id, Name: name.String, BasePrice: price.Float64, ColorClass: color.String}
			}
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// seatInsertBatch caps the rows per INSERT so a statement stays far below
// MySQL's 65535 placeholder limit.
var seatInsertBatch = 1000

// CreateBulkTx inserts seats for a theater, seatInsertBatch rows per
// statement.
func (r *SeatRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, theaterID uint64, seats []model.Seat) error {
	for start := 0; start < len(seats); start += seatInsertBatch {
		end := min(start+seatInsertBatch, len(seats))
		if err := insertSeats(ctx, tx, theaterID, seats[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func insertSeats(ctx context.Context, tx *sql.Tx, theaterID uint64, seats []model.Seat) error {
	var b strings.Builder
	b.WriteString(`INSERT INTO seats (theater_id, category_id, row_char, seat_number, real_seat_number) VALUES `)
	args := make([]any, 0, len(seats)*5)
	for i, s := range seats {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, theaterID, s.CategoryID, s.RowChar, s.SeatNumber, s.RealSeatNumber)
	}
	_, err := tx.ExecContext(ctx, b.String(), args...)
	return translate(err)
}

// DeleteByTheaterTx removes every seat of a theater.
func (r *SeatRepo) DeleteByTheaterTx(ctx context.Context, tx *sql.Tx, theaterID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM seats WHERE theater_id = ?`, theaterID)
	return err
}
