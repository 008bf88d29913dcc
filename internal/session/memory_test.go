package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagex-boxoffice/internal/seatmap"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(time.Minute)

	s, err := seatmap.PreviewGrid(seatmap.NewSession(), 2, 3)
	require.NoError(t, err)

	id, err := st.Create(ctx, s)
	require.NoError(t, err)
	assert.True(t, validID(id))

	got, err := st.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Seats, 6)

	next, err := seatmap.ToggleSeat(got, "A", 1)
	require.NoError(t, err)
	require.NoError(t, st.Put(ctx, id, next))

	got, err = st.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Selected, 1)

	require.NoError(t, st.Delete(ctx, id))
	_, err = st.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Put(ctx, id, next), ErrNotFound)
}

func TestMemoryStore_SlidingExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	st := NewMemoryStore(10 * time.Minute)
	st.now = func() time.Time { return now }

	id, err := st.Create(ctx, seatmap.NewSession())
	require.NoError(t, err)

	now = now.Add(8 * time.Minute)
	_, err = st.Get(ctx, id)
	require.NoError(t, err, "read inside ttl")

	now = now.Add(8 * time.Minute)
	_, err = st.Get(ctx, id)
	require.NoError(t, err, "previous read pushed expiry out")

	now = now.Add(11 * time.Minute)
	_, err = st.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidID(t *testing.T) {
	assert.False(t, validID("../../etc"))
	assert.False(t, validID(""))
	assert.True(t, validID(newID()))
}
