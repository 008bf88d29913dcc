package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/stagex-boxoffice/internal/booking"
	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// BookingRepo reads bookings for the box office list.  Bookings are
// written by the sales channels, never here.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingSelect = `SELECT b.booking_id, b.total_amount, b.status, b.created_at,
       b.user_id IS NOT NULL AS online,
       COALESCE(cd.full_name, cu.email, '') AS customer_name,
       COALESCE(sd.full_name, su.account_name, '') AS staff_name,
       COALESCE(sh.title, '') AS show_title,
       COALESCE(th.name, '') AS theater_name,
       TIMESTAMP(p.performance_date, p.start_time) AS performance_time,
       COALESCE(p.price, 0) AS performance_price
FROM bookings b
LEFT JOIN users cu ON cu.user_id = b.user_id
LEFT JOIN user_detail cd ON cd.user_id = b.user_id
LEFT JOIN users su ON su.user_id = b.created_by
LEFT JOIN user_detail sd ON sd.user_id = b.created_by
LEFT JOIN performances p ON p.performance_id = b.performance_id
LEFT JOIN shows sh ON sh.show_id = p.show_id
LEFT JOIN theaters th ON th.theater_id = p.theater_id
ORDER BY b.booking_id DESC`

const bookingTicketSelect = `SELECT t.booking_id, COALESCE(s.row_char, ''), COALESCE(s.seat_number, 0),
       COALESCE(sc.base_price, 0), t.ticket_code
FROM tickets t
LEFT JOIN seats s ON s.seat_id = t.seat_id
LEFT JOIN seat_categories sc ON sc.category_id = s.category_id
WHERE t.booking_id IN (`

// List returns every booking newest first, with its tickets, narrowed by f.
func (r *BookingRepo) List(ctx context.Context, f booking.Filter) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, bookingSelect)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		all    []model.Booking
		prices []float64
	)
	for rows.Next() {
		var (
			b         model.Booking
			online    bool
			staffName string
			perf      sql.NullTime
			price     float64
		)
		if err := rows.Scan(&b.ID, &b.TotalAmount, &b.Status, &b.CreatedAt, &online,
			&b.CustomerName, &staffName, &b.ShowTitle, &b.TheaterName, &perf, &price); err != nil {
			return nil, err
		}
		b.CreatorName = booking.CreatorName(online, staffName)
		if perf.Valid {
			at := perf.Time
			b.PerformanceTime = &at
		}
		b.Seats, b.Tickets = []string{}, []model.BookingTicket{}
		all = append(all, b)
		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachTickets(ctx, all, prices); err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

func (r *BookingRepo) attachTickets(ctx context.Context, list []model.Booking, prices []float64) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[uint64]int, len(list))
	args := make([]any, len(list))
	for i, b := range list {
		byID[b.ID] = i
		args[i] = b.ID
	}
	rows, err := r.db.QueryContext(ctx, bookingTicketSelect+placeholders(len(args))+`) ORDER BY t.ticket_id`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			bookingID uint64
			row       string
			number    int
			base      float64
			code      int64
		)
		if err := rows.Scan(&bookingID, &row, &number, &base, &code); err != nil {
			return err
		}
		i, ok := byID[bookingID]
		if !ok {
			continue
		}
		label := booking.SeatLabel(row, number)
		list[i].Seats = append(list[i].Seats, label)
		list[i].Tickets = append(list[i].Tickets, model.BookingTicket{
			SeatLabel:  label,
			Price:      prices[i] + base,
			TicketCode: code,
		})
	}
	return rows.Err()
}
