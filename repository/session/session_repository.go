package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/muhammadheryan/product-console/cmd/redis"
	"github.com/muhammadheryan/product-console/model"
	goredis "github.com/redis/go-redis/v9"
)

// SessionRepository persists the page state of each browser session.
type SessionRepository interface {
	// GetState returns nil, nil when the session has no stored state.
	GetState(ctx context.Context, sessionID string) (*model.State, error)
	SaveState(ctx context.Context, sessionID string, state *model.State) error
	DeleteState(ctx context.Context, sessionID string) error
}

type redis struct {
	ttl time.Duration
}

// NewRedisRepository stores states as JSON under "session:<id>" using the shared
// client from cmd/redis. Every save refreshes the TTL.
func NewRedisRepository(ttl time.Duration) SessionRepository {
	return &redis{ttl: ttl}
}

func key(sessionID string) string {
	return "session:" + sessionID
}

func (r *redis) GetState(ctx context.Context, sessionID string) (*model.State, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, redisclient.ErrNotInitialized
	}
	raw, err := client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state model.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &state, nil
}

func (r *redis) SaveState(ctx context.Context, sessionID string, state *model.State) error {
	client := redisclient.Get()
	if client == nil {
		return redisclient.ErrNotInitialized
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sessionID, err)
	}
	return client.Set(ctx, key(sessionID), raw, r.ttl).Err()
}

func (r *redis) DeleteState(ctx context.Context, sessionID string) error {
	client := redisclient.Get()
	if client == nil {
		return redisclient.ErrNotInitialized
	}
	return client.Del(ctx, key(sessionID)).Err()
}
