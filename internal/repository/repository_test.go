package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
	"github.com/iliyamo/stagex-boxoffice/internal/ticket"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func TestTicketRepo_MarkUsedIsConditional(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTicketRepo(db)
	at := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)

	stmt := q(`UPDATE tickets SET status = ?, updated_at = ? WHERE ticket_code = ? AND status = ?`)
	mock.ExpectExec(stmt).
		WithArgs(ticket.LabelUsed, at, int64(12345), ticket.LabelValid).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(stmt).
		WithArgs(ticket.LabelUsed, at, int64(12345), ticket.LabelValid).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.MarkUsed(context.Background(), 12345, at)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkUsed(context.Background(), 12345, at)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTicketRepo_FindByCode(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTicketRepo(db)

	stmt := q(`SELECT ticket_id, ticket_code, status, updated_at FROM tickets WHERE ticket_code = ?`)
	mock.ExpectQuery(stmt).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"ticket_id", "ticket_code", "status", "updated_at"}).
			AddRow(1, 7, ticket.LabelValid, nil))
	mock.ExpectQuery(stmt).WithArgs(int64(999999)).WillReturnError(sql.ErrNoRows)

	got, err := repo.FindByCode(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, ticket.LabelValid, got.Status)
	assert.True(t, got.UpdatedAt.IsZero())

	_, err = repo.FindByCode(context.Background(), 999999)
	assert.ErrorIs(t, err, ticket.ErrTicketNotFound)
}

func TestTheaterRepo_ListDerivesCanDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTheaterRepo(db, NewSeatRepo(db))

	mock.ExpectQuery(`SELECT t.theater_id, t.name, t.total_seats, t.status`).
		WillReturnRows(sqlmock.NewRows([]string{"theater_id", "name", "total_seats", "status", "performances"}).
			AddRow(1, "Main Hall", 120, model.TheaterStatusActive, 0).
			AddRow(2, "Studio", 40, model.TheaterStatusActive, 3))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].CanDelete)
	assert.False(t, got[1].CanDelete)
}

func TestTheaterRepo_CreateWithSeats(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTheaterRepo(db, NewSeatRepo(db))
	cat := uint64(4)
	seats := []model.Seat{
		{RowChar: "A", SeatNumber: 1, RealSeatNumber: 1, CategoryID: &cat},
		{RowChar: "A", SeatNumber: 3, RealSeatNumber: 2, CategoryID: &cat},
	}

	mock.ExpectBegin()
	mock.ExpectExec(q(`INSERT INTO theaters (name, total_seats, status) VALUES (?, ?, ?)`)).
		WithArgs("Main Hall", 2, model.TheaterStatusActive).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec(q(`INSERT INTO seats (theater_id, category_id, row_char, seat_number, real_seat_number) VALUES (?, ?, ?, ?, ?),(?, ?, ?, ?, ?)`)).
		WithArgs(uint64(9), cat, "A", 1, 1, uint64(9), cat, "A", 3, 2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	th, err := repo.CreateWithSeats(context.Background(), "Main Hall", seats)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), th.ID)
	assert.Equal(t, 2, th.TotalSeats)
	assert.Equal(t, model.TheaterStatusActive, th.Status)
}

func TestTheaterRepo_CreateDuplicateRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTheaterRepo(db, NewSeatRepo(db))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO theaters`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err := repo.CreateWithSeats(context.Background(), "Main Hall", nil)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestTheaterRepo_DeleteWithPerformances(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTheaterRepo(db, NewSeatRepo(db))

	mock.ExpectBegin()
	mock.ExpectQuery(q(`SELECT theater_id FROM theaters WHERE theater_id = ? FOR UPDATE`)).WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"theater_id"}).AddRow(2))
	mock.ExpectQuery(q(`SELECT COUNT(*) FROM performances WHERE theater_id = ?`)).WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 2), ErrConflict)
}

func TestTheaterRepo_UpdateStructureReplacesSeats(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTheaterRepo(db, NewSeatRepo(db))
	cat := uint64(1)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"theater_id"}).AddRow(5))
	mock.ExpectQuery(`FROM performances`).WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(q(`UPDATE theaters SET name = ?, total_seats = ? WHERE theater_id = ?`)).
		WithArgs("Studio", 1, uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`DELETE FROM seats WHERE theater_id = ?`)).WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec(`INSERT INTO seats`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStructure(context.Background(), 5, "Studio",
		[]model.Seat{{RowChar: "A", SeatNumber: 1, RealSeatNumber: 1, CategoryID: &cat}})
	require.NoError(t, err)
}

func TestSeatRepo_GetByTheaterResolvesCategory(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSeatRepo(db)

	mock.ExpectQuery(`FROM seats s`).WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id", "theater_id", "category_id", "row_char", "seat_number", "real_seat_number", "category_name", "base_price", "color_class"}).
			AddRow(1, 1, 2, "A", 1, 1, "VIP", 150000.0, "E74C3C").
			AddRow(2, 1, nil, "A", 2, 2, nil, nil, nil))

	seats, err := repo.GetByTheater(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, seats, 2)
	require.NotNil(t, seats[0].Category)
	assert.Equal(t, "VIP", seats[0].Category.Name)
	assert.Nil(t, seats[1].CategoryID)
	assert.Nil(t, seats[1].Category)
}

func TestSeatCategoryRepo_DeleteInUse(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSeatCategoryRepo(db)

	mock.ExpectQuery(q(`SELECT COUNT(*) FROM seats WHERE category_id = ?`)).WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(8))

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrInUse)
}

func TestSeatCategoryRepo_NameExistsIgnoresCase(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSeatCategoryRepo(db)

	mock.ExpectQuery(`LOWER\(category_name\) = LOWER\(\?\)`).WithArgs("vip", uint64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	exists, err := repo.NameExists(context.Background(), " vip ", 0)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTranslate(t *testing.T) {
	assert.ErrorIs(t, translate(&mysql.MySQLError{Number: 1451}), ErrInUse)
	assert.ErrorIs(t, translate(&mysql.MySQLError{Number: 1062}), ErrDuplicateName)
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(sql.ErrConnDone), sql.ErrConnDone)
}
