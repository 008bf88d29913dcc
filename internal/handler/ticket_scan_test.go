package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
	"github.com/iliyamo/stagex-boxoffice/internal/ticket"
)

type fakeTickets struct {
	mu      sync.Mutex
	byCode  map[int64]*model.Ticket
	lookups int
	fail    error
}

func (f *fakeTickets) FindByCode(_ context.Context, code int64) (*model.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.fail != nil {
		return nil, f.fail
	}
	t, ok := f.byCode[code]
	if !ok {
		return nil, ticket.ErrTicketNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTickets) MarkUsed(_ context.Context, code int64, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byCode[code]
	if !ok || t.Status != ticket.LabelValid {
		return false, nil
	}
	t.Status, t.UpdatedAt = ticket.LabelUsed, at
	return true, nil
}

func newScanServer(store ticket.Store) *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	h := NewTicketScanHandler(ticket.NewRedeemer(store, nil, nil))
	e.POST("/api/TicketScan", h.Scan)
	return e
}

func postScan(e *echo.Echo, body string) (int, scanResponse) {
	req := httptest.NewRequest(http.MethodPost, "/api/TicketScan", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var out scanResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func TestScan_Outcomes(t *testing.T) {
	store := &fakeTickets{byCode: map[int64]*model.Ticket{
		12345: {ID: 1, Code: 12345, Status: ticket.LabelValid},
		2:     {ID: 2, Code: 2, Status: ticket.LabelPending},
		3:     {ID: 3, Code: 3, Status: ticket.LabelCancelled},
		4:     {ID: 4, Code: 4, Status: "Bogus"},
	}}
	e := newScanServer(store)

	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"valid", `{"code":"12345"}`, http.StatusOK, "Ticket is valid. Status updated for ticket 12345."},
		{"replay", `{"barcode":"12345"}`, http.StatusBadRequest, "This ticket has already been used."},
		{"pending", `{"ticketCode":"2"}`, http.StatusBadRequest, "Ticket has not been confirmed yet. Please confirm payment first."},
		{"cancelled", `{"ticket_code":"3"}`, http.StatusBadRequest, "This ticket has been cancelled and is no longer valid."},
		{"unknown status", `{"code":"4"}`, http.StatusBadRequest, "Invalid ticket status: Bogus."},
		{"not found", `{"code":"999999"}`, http.StatusNotFound, "Ticket with code 999999 not found."},
		{"bad format", `{"code":"ABC123"}`, http.StatusBadRequest, "Invalid ticket code: ABC123"},
		{"missing", `{"code":" "}`, http.StatusBadRequest, "No ticket code provided in payload."},
		{"empty body", ``, http.StatusBadRequest, "No ticket code provided in payload."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, out := postScan(e, tc.body)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, "BARCODE", out.Code)
			assert.Equal(t, tc.msg, out.CodeValue)
		})
	}
}

func TestScan_InvalidFormatSkipsLookup(t *testing.T) {
	store := &fakeTickets{byCode: map[int64]*model.Ticket{}}
	status, _ := postScan(newScanServer(store), `{"code":"ABC123"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Zero(t, store.lookups)
}

func TestScan_StoreFailure(t *testing.T) {
	store := &fakeTickets{fail: errors.New("db down")}
	status, out := postScan(newScanServer(store), `{"code":"5"}`)
	require.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Could not process ticket 5. Please try again.", out.CodeValue)
}
