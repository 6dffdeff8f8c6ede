package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/foodshare/platform/internal/core/ports"
)

// lockTTL is how long a lock outlives the longest simulated delay. It bounds
// how long a crashed request can block its session.
const lockTTL = 30 * time.Second

// releaseScript deletes the lock only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmissionGuard serializes submissions per session across server instances.
// Key format: foodshare:session:<session_id>:lock
// Value: <op>:<uuid>, which doubles as the release token.
type SubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.SubmissionGuard = (*SubmissionGuard)(nil)

// NewSubmissionGuard creates a SubmissionGuard whose locks expire lockTTL
// after the longest simulated delay a holder can spend.
func NewSubmissionGuard(client *redis.Client, longestDelay time.Duration) *SubmissionGuard {
	if longestDelay < 0 {
		longestDelay = 0
	}
	return &SubmissionGuard{client: client, ttl: longestDelay + lockTTL}
}

// Acquire reports whether the lock was taken; false means another submission
// for the session is still running.
func (g *SubmissionGuard) Acquire(ctx context.Context, sessionID, op string) (string, bool, error) {
	token := op + ":" + uuid.NewString()
	ok, err := g.client.SetNX(ctx, lockKey(sessionID), token, g.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire submission lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release deletes the lock if token still owns it. A lock that expired and
// was taken by another submission is left alone.
func (g *SubmissionGuard) Release(ctx context.Context, sessionID, token string) error {
	if err := releaseScript.Run(ctx, g.client, []string{lockKey(sessionID)}, token).Err(); err != nil {
		return fmt.Errorf("release submission lock: %w", err)
	}
	return nil
}

// Holder returns the operation of the in-flight submission, or "".
func (g *SubmissionGuard) Holder(ctx context.Context, sessionID string) (string, error) {
	val, err := g.client.Get(ctx, lockKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("submission lock check: %w", err)
	}
	op, _, _ := strings.Cut(val, ":")
	return op, nil
}

func lockKey(sessionID string) string {
	return fmt.Sprintf("foodshare:session:%s:lock", sessionID)
}
