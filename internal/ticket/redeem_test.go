package ticket

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

type memStore struct {
	mu       sync.Mutex
	tickets  map[int64]*model.Ticket
	finds    int
	findErr  error
	markErr  error
	beforeCS func() // runs inside MarkUsed before the compare
}

func newMemStore(tickets ...model.Ticket) *memStore {
	s := &memStore{tickets: map[int64]*model.Ticket{}}
	for _, t := range tickets {
		cp := t
		s.tickets[t.Code] = &cp
	}
	return s
}

func (s *memStore) FindByCode(_ context.Context, code int64) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	if s.findErr != nil {
		return nil, s.findErr
	}
	t, ok := s.tickets[code]
	if !ok {
		return nil, ErrTicketNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *memStore) MarkUsed(_ context.Context, code int64, at time.Time) (bool, error) {
	if s.beforeCS != nil {
		s.beforeCS()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return false, s.markErr
	}
	t, ok := s.tickets[code]
	if !ok || t.Status != LabelValid {
		return false, nil
	}
	t.Status = LabelUsed
	t.UpdatedAt = at
	return true, nil
}

type recordingNotifier struct {
	got []model.Ticket
	err error
}

func (n *recordingNotifier) TicketRedeemed(_ context.Context, t model.Ticket) error {
	n.got = append(n.got, t)
	return n.err
}

var scanInstant = time.Date(2026, 10, 14, 19, 30, 0, 0, time.UTC)

func newTestRedeemer(store Store, n Notifier) *Redeemer {
	r := NewRedeemer(store, n, nil)
	r.Now = func() time.Time { return scanInstant }
	return r
}

func TestRedeem_ValidThenReplay(t *testing.T) {
	store := newMemStore(model.Ticket{ID: 1, Code: 12345, Status: LabelValid})
	notifier := &recordingNotifier{}
	r := newTestRedeemer(store, notifier)

	res, err := r.Redeem(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, LabelUsed, res.Ticket.Status)
	assert.Equal(t, scanInstant, res.Ticket.UpdatedAt)
	assert.Contains(t, res.Message, "12345")
	assert.Equal(t, LabelUsed, store.tickets[12345].Status)
	assert.Equal(t, scanInstant, store.tickets[12345].UpdatedAt)
	require.Len(t, notifier.got, 1)

	_, err = r.Redeem(context.Background(), "12345")
	assert.ErrorIs(t, err, ErrAlreadyUsed)
	assert.Len(t, notifier.got, 1)
}

func TestRedeem_InvalidFormatSkipsStore(t *testing.T) {
	store := newMemStore()
	r := newTestRedeemer(store, nil)

	_, err := r.Redeem(context.Background(), "ABC123")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Equal(t, KindInvalidFormat, KindOf(err))
	assert.Zero(t, store.finds)
}

func TestRedeem_Rejections(t *testing.T) {
	store := newMemStore(
		model.Ticket{Code: 1, Status: LabelPending},
		model.Ticket{Code: 2, Status: LabelUsed},
		model.Ticket{Code: 3, Status: LabelCancelled},
		model.Ticket{Code: 4, Status: "Hết hạn"},
	)
	r := newTestRedeemer(store, nil)

	tests := []struct {
		code string
		want *Error
	}{
		{"1", ErrNotYetConfirmed},
		{"2", ErrAlreadyUsed},
		{"3", ErrCancelled},
		{"4", ErrUnknownStatus},
		{"999999", ErrNotFound},
		{"   ", ErrMissingCode},
	}
	for _, tc := range tests {
		t.Run(tc.want.Kind.String(), func(t *testing.T) {
			_, err := r.Redeem(context.Background(), tc.code)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.NotEmpty(t, e.Message)
		})
	}
	// rejected tickets are untouched
	assert.Equal(t, LabelPending, store.tickets[1].Status)
	assert.True(t, store.tickets[1].UpdatedAt.IsZero())
}

func TestRedeem_UnknownStatusMessage(t *testing.T) {
	r := newTestRedeemer(newMemStore(model.Ticket{Code: 7, Status: "???"}), nil)
	_, err := r.Redeem(context.Background(), "7")
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Invalid ticket status: ???.", e.Message)
}

func TestRedeem_LostRaceReportsAlreadyUsed(t *testing.T) {
	store := newMemStore(model.Ticket{Code: 55, Status: LabelValid})
	// a concurrent scan wins between our read and our compare-and-set
	store.beforeCS = func() {
		store.mu.Lock()
		store.tickets[55].Status = LabelUsed
		store.mu.Unlock()
	}
	notifier := &recordingNotifier{}
	r := newTestRedeemer(store, notifier)

	_, err := r.Redeem(context.Background(), "55")
	assert.ErrorIs(t, err, ErrAlreadyUsed)
	assert.Empty(t, notifier.got)
	assert.Equal(t, 2, store.finds)
}

func TestRedeem_ConcurrentScansSucceedOnce(t *testing.T) {
	store := newMemStore(model.Ticket{Code: 77, Status: LabelValid})
	r := newTestRedeemer(store, nil)

	const scans = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, used := 0, 0
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Redeem(context.Background(), "77")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrAlreadyUsed):
				used++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, scans-1, used)
}

func TestRedeem_StoreFailureLeavesTicket(t *testing.T) {
	boom := errors.New("connection reset")
	store := newMemStore(model.Ticket{Code: 9, Status: LabelValid})
	store.markErr = boom
	notifier := &recordingNotifier{}
	r := newTestRedeemer(store, notifier)

	_, err := r.Redeem(context.Background(), "9")
	assert.ErrorIs(t, err, ErrSystemFailure)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, LabelValid, store.tickets[9].Status)
	assert.Empty(t, notifier.got)

	store.markErr = nil
	store.findErr = boom
	_, err = r.Redeem(context.Background(), "9")
	assert.ErrorIs(t, err, ErrSystemFailure)
}

func TestRedeem_NotifierFailureDoesNotFail(t *testing.T) {
	store := newMemStore(model.Ticket{Code: 10, Status: LabelValid})
	r := newTestRedeemer(store, &recordingNotifier{err: errors.New("broker down")})

	_, err := r.Redeem(context.Background(), " 10 ")
	require.NoError(t, err)
	assert.Equal(t, LabelUsed, store.tickets[10].Status)
}

func TestRedeem_NotifierFailureLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	store := newMemStore(model.Ticket{Code: 11, Status: LabelValid})
	r := NewRedeemer(store, &recordingNotifier{err: errors.New("broker down")}, slog.New(slog.NewTextHandler(&buf, nil)))

	_, err := r.Redeem(context.Background(), "11")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "broker down"), buf.String())
	assert.Contains(t, buf.String(), "redemption notification failed")
}

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusValid, StatusUsed, StatusCancelled} {
		assert.Equal(t, s, ParseStatus(s.Label()), s.String())
	}
	assert.Equal(t, StatusUnknown, ParseStatus(""))
	assert.Equal(t, StatusUnknown, ParseStatus("valid"))
}
