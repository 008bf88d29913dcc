package model

import "time"

// Ticket is an issued admission ticket.  Tickets are created by the
// booking flow; the scan endpoint only reads them and moves valid ones
// to the used state.
//
// Fields:
//  ID:         primary key identifier.
//  Code:       numeric ticket code printed on the barcode (unique).
//  Status:     stored status label (see ticket.Status for the variants).
//  UpdatedAt:  last modification; set to the scan instant on redemption.
type Ticket struct {
	ID        uint64    `json:"ticket_id"`   // tickets.ticket_id
	Code      int64     `json:"ticket_code"` // tickets.ticket_code
	Status    string    `json:"status"`      // tickets.status
	UpdatedAt time.Time `json:"updated_at"`  // tickets.updated_at
}
