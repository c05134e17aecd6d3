package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/muhammadheryan/product-console/model"
)

type entry struct {
	raw       []byte
	expiresAt time.Time
}

type memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// NewMemoryRepository keeps states in process. Used when no redis host is configured.
// States are stored encoded so callers never share slices with the repository.
func NewMemoryRepository(ttl time.Duration) SessionRepository {
	return &memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (m *memory) GetState(_ context.Context, sessionID string) (*model.State, error) {
	m.mu.Lock()
	e, ok := m.entries[sessionID]
	if ok && m.expired(e) {
		delete(m.entries, sessionID)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}

	var state model.State
	if err := json.Unmarshal(e.raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *memory) SaveState(_ context.Context, sessionID string, state *model.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	e := entry{raw: raw}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[sessionID] = e
	m.mu.Unlock()
	return nil
}

func (m *memory) DeleteState(_ context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.entries, sessionID)
	m.mu.Unlock()
	return nil
}

func (m *memory) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}
