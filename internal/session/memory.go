package session

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/stagex-boxoffice/internal/seatmap"
)

type memEntry struct {
	s       seatmap.Session
	expires time.Time
}

// MemoryStore keeps sessions in process memory.  It is used when Redis is
// not available and in tests.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memEntry
}

// NewMemoryStore returns a MemoryStore whose sessions expire after ttl
// without use.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: make(map[string]memEntry)}
}

func (m *MemoryStore) Create(_ context.Context, s seatmap.Session) (string, error) {
	id := newID()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	m.entries[id] = memEntry{s: s, expires: m.now().Add(m.ttl)}
	return id, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (seatmap.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(id)
	if !ok {
		return seatmap.Session{}, ErrNotFound
	}
	e.expires = m.now().Add(m.ttl)
	m.entries[id] = e
	return e.s, nil
}

func (m *MemoryStore) Put(_ context.Context, id string, s seatmap.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live(id); !ok {
		return ErrNotFound
	}
	m.entries[id] = memEntry{s: s, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// live returns the entry for id, dropping it when expired.  m.mu must be held.
func (m *MemoryStore) live(id string) (memEntry, bool) {
	e, ok := m.entries[id]
	if !ok {
		return memEntry{}, false
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, id)
		return memEntry{}, false
	}
	return e, true
}

// sweep drops every expired entry.  m.mu must be held.
func (m *MemoryStore) sweep() {
	now := m.now()
	for id, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, id)
		}
	}
}
