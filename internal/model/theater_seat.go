package model

// SeatCategory is a pricing/display class assigned to seats.  It
// corresponds to a row in the `seat_categories` table.
//
// Fields:
//  ID:         primary key identifier.
//  Name:       unique (case-insensitive) category name.
//  BasePrice:  base ticket price for seats in this category.
//  ColorClass: six digit hex color (no leading #) used on seat maps.
type SeatCategory struct {
	ID         uint64  `json:"category_id"`   // seat_categories.category_id
	Name       string  `json:"category_name"` // seat_categories.category_name
	BasePrice  float64 `json:"base_price"`    // seat_categories.base_price
	ColorClass string  `json:"color_class"`   // seat_categories.color_class
}

// Theater is a performance hall with a fixed seat structure.
//
// Fields:
//  ID:         primary key identifier.
//  Name:       unique theater name.
//  TotalSeats: number of seats stored for the theater.
//  Status:     stored status label.
//  CanDelete:  derived; false when performances reference the theater.
type Theater struct {
	ID         uint64 `json:"theater_id"`  // theaters.theater_id
	Name       string `json:"name"`        // theaters.name
	TotalSeats int    `json:"total_seats"` // theaters.total_seats
	Status     string `json:"status"`      // theaters.status
	CanDelete  bool   `json:"can_delete"`  // derived from performances
}

// TheaterStatusActive is the status label written when a theater is created.
const TheaterStatusActive = "Đã hoạt động"

// Seat is a physical seat within a theater.  RowChar and SeatNumber
// identify the physical position and never change while editing;
// RealSeatNumber is the display position recomputed after removals.
//
// Fields:
//  ID:             primary key identifier (zero for unsaved seats).
//  TheaterID:      owning theater.
//  RowChar:        physical row letter (A-Z).
//  SeatNumber:     physical column, 1-based.
//  RealSeatNumber: contiguous display number within the row.
//  CategoryID:     assigned category; nil until assigned.
//  Category:       resolved category reference, display only.
type Seat struct {
	ID             uint64        `json:"seat_id,omitempty"`    // seats.seat_id
	TheaterID      uint64        `json:"theater_id,omitempty"` // seats.theater_id
	RowChar        string        `json:"row_char"`             // seats.row_char
	SeatNumber     int           `json:"seat_number"`          // seats.seat_number
	RealSeatNumber int           `json:"real_seat_number"`     // seats.real_seat_number
	CategoryID     *uint64       `json:"category_id"`          // seats.category_id (nullable)
	Category       *SeatCategory `json:"category,omitempty"`   // joined seat_categories row
}

// HasCategory reports whether a usable category id is assigned.
func (s Seat) HasCategory() bool {
	return s.CategoryID != nil && *s.CategoryID != 0
}
