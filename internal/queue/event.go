// Package queue defines the broker messages exchanged by the box office
// and the consumer that records them.
package queue

import (
	"time"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// TicketRedeemedQueue is the durable queue carrying redemption events.
const TicketRedeemedQueue = "ticket.redeemed"

// TicketRedeemedEvent is published after a ticket has been marked used.
type TicketRedeemedEvent struct {
	TicketID   uint64 `json:"ticket_id"`
	TicketCode int64  `json:"ticket_code"`
	Status     string `json:"status"`
	RedeemedAt string `json:"redeemed_at"` // RFC 3339, UTC
	RequestID  string `json:"request_id,omitempty"`
}

// NewTicketRedeemedEvent builds the event for a redeemed ticket.
func NewTicketRedeemedEvent(t model.Ticket, requestID string) TicketRedeemedEvent {
	return TicketRedeemedEvent{
		TicketID:   t.ID,
		TicketCode: t.Code,
		Status:     t.Status,
		RedeemedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
		RequestID:  requestID,
	}
}
