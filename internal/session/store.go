// Package session keeps editor sessions between requests.  A session is
// addressed by a random id and expires after a period without use.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/stagex-boxoffice/internal/seatmap"
)

// ErrNotFound is returned for an unknown or expired session id.
var ErrNotFound = errors.New("editor session not found")

// Store persists editor sessions.  Get and Put refresh the expiry.
type Store interface {
	Create(ctx context.Context, s seatmap.Session) (string, error)
	Get(ctx context.Context, id string) (seatmap.Session, error)
	Put(ctx context.Context, id string, s seatmap.Session) error
	Delete(ctx context.Context, id string) error
}

func newID() string { return uuid.NewString() }

// validID rejects ids that could not have come from Create, which keeps
// arbitrary path input out of storage keys.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
