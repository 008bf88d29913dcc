package model

import "time"

// Genre is a show genre.  It corresponds to a row in the `genres` table.
type Genre struct {
	ID   uint64 `json:"genre_id"`   // genres.genre_id
	Name string `json:"genre_name"` // genres.genre_name
}

// Show is a stage production that performances are scheduled for.
//
// Fields:
//  ID:              primary key identifier.
//  Title:           display title.
//  Director:        director's name.
//  DurationMinutes: running time, always positive.
//  PosterImageURL:  poster image location.
//  Description:     free text synopsis.
//  Status:          stored status label.
//  Genres:          linked genres through show_genres.
//  CanDelete:       derived; false when performances reference the show.
type Show struct {
	ID              uint64  `json:"show_id"`          // shows.show_id
	Title           string  `json:"title"`            // shows.title
	Director        string  `json:"director"`         // shows.director
	DurationMinutes int     `json:"duration_minutes"` // shows.duration_minutes
	PosterImageURL  string  `json:"poster_image_url"` // shows.poster_image_url
	Description     string  `json:"description"`      // shows.description
	Status          string  `json:"status"`           // shows.status
	Genres          []Genre `json:"genres"`           // joined through show_genres
	CanDelete       bool    `json:"can_delete"`       // derived from performances
}

// ShowStatusUpcoming is the status label written when a show is saved.
const ShowStatusUpcoming = "Sắp chiếu"

// Booking is one order as listed by the box office.  It is assembled from
// bookings, the customer and staff accounts, the performance and its
// tickets.
//
// Fields:
//  ID:              primary key identifier.
//  CustomerName:    the online customer's full name or email; empty for counter sales.
//  CreatorName:     "Online" for customer orders, else the staff member who sold it.
//  ShowTitle:       title of the booked show.
//  TheaterName:     theater of the booked performance.
//  PerformanceTime: start of the performance; nil when unknown.
//  TotalAmount:     order total.
//  Status:          stored status label.
//  Seats:           seat labels such as "A3", in ticket order.
//  Tickets:         per-ticket details used for printing.
//  CreatedAt:       when the booking was made.
type Booking struct {
	ID              uint64          `json:"booking_id"`
	CustomerName    string          `json:"customer_name"`
	CreatorName     string          `json:"creator_name"`
	ShowTitle       string          `json:"show_title"`
	TheaterName     string          `json:"theater_name"`
	PerformanceTime *time.Time      `json:"performance_time"`
	TotalAmount     float64         `json:"total_amount"`
	Status          string          `json:"status"`
	Seats           []string        `json:"seats"`
	Tickets         []BookingTicket `json:"tickets"`
	CreatedAt       time.Time       `json:"created_at"`
}

// BookingTicket is a ticket line of a booking.  Price is the performance
// price plus the seat category's base price.
type BookingTicket struct {
	SeatLabel  string  `json:"seat_label"`
	Price      float64 `json:"price"`
	TicketCode int64   `json:"ticket_code"`
}
