package ports

import (
	"context"

	"github.com/foodshare/platform/internal/core/domain"
)

// SessionCache is the durable cache: one slot per session id holding the
// serialized principal. Load returns (nil, nil) when the slot is empty.
type SessionCache interface {
	Load(ctx context.Context, sessionID string) (*domain.Principal, error)
	Save(ctx context.Context, sessionID string, principal *domain.Principal) error
	Clear(ctx context.Context, sessionID string) error
}

// SubmissionGuard serializes simulated submissions per session. Acquire
// returns the token naming the new holder, or ok=false when another
// submission already holds the session. Release frees the lock only while
// token still owns it, so a holder whose lock expired cannot free its
// successor's.
type SubmissionGuard interface {
	Acquire(ctx context.Context, sessionID, op string) (token string, ok bool, err error)
	Release(ctx context.Context, sessionID, token string) error
	// Holder returns the operation holding the session, or "" when it is free.
	Holder(ctx context.Context, sessionID string) (string, error)
}
