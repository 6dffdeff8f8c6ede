// Package memory provides in-process implementations of the storage ports.
// They back CACHE_DRIVER=memory and the test suites.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/foodshare/platform/internal/core/domain"
)

// SessionCache keeps serialized principals in a map, mirroring the Redis
// record format so decoding behaves identically.
type SessionCache struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewSessionCache() *SessionCache {
	return &SessionCache{slots: make(map[string][]byte)}
}

func (c *SessionCache) Load(_ context.Context, sessionID string) (*domain.Principal, error) {
	c.mu.RLock()
	raw, ok := c.slots[sessionID]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var p domain.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &p, nil
}

func (c *SessionCache) Save(_ context.Context, sessionID string, principal *domain.Principal) error {
	raw, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	c.mu.Lock()
	c.slots[sessionID] = raw
	c.mu.Unlock()
	return nil
}

func (c *SessionCache) Clear(_ context.Context, sessionID string) error {
	c.mu.Lock()
	delete(c.slots, sessionID)
	c.mu.Unlock()
	return nil
}

// Raw exposes the stored bytes of a slot.
func (c *SessionCache) Raw(sessionID string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, ok := c.slots[sessionID]
	return raw, ok
}

// Put stores raw bytes directly, bypassing encoding.
func (c *SessionCache) Put(sessionID string, raw []byte) {
	c.mu.Lock()
	c.slots[sessionID] = raw
	c.mu.Unlock()
}
