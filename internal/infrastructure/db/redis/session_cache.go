package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/core/ports"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// SessionCache stores one serialized principal per client session.
// Key format: foodshare:session:<session_id>:user
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.SessionCache = (*SessionCache)(nil)

// NewSessionCache creates a SessionCache wrapping the given Redis client.
// Slots expire after ttl; defaultSessionTTL is used when ttl <= 0.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionCache{client: client, ttl: ttl}
}

// Load returns the stored principal, or nil when the slot is empty.
func (c *SessionCache) Load(ctx context.Context, sessionID string) (*domain.Principal, error) {
	raw, err := c.client.Get(ctx, SessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}

	var p domain.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &p, nil
}

// Save writes the whole record in one SET so the slot is never partial.
func (c *SessionCache) Save(ctx context.Context, sessionID string, principal *domain.Principal) error {
	raw, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := c.client.Set(ctx, SessionKey(sessionID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Clear removes the slot. Clearing an absent slot is not an error.
func (c *SessionCache) Clear(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, SessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

func SessionKey(sessionID string) string {
	return fmt.Sprintf("foodshare:session:%s:user", sessionID)
}
