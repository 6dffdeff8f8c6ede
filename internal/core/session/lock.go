package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/core/ports"
)

// Operations that take the submission guard.
const (
	OpLogin    = "login"
	OpRegister = "register"
	OpPost     = "post"
	OpClaim    = "claim"
)

// establishing reports whether op is one that is establishing the session
// and therefore shows as loading.
func establishing(op string) bool {
	return op == OpLogin || op == OpRegister
}

// Hold acquires the submission guard for sessionID on behalf of op and
// returns the function that releases it. An overlapping submission yields
// domain.ErrSubmissionInFlight. When the guard itself is unreachable the
// submission proceeds unguarded.
func Hold(ctx context.Context, guard ports.SubmissionGuard, sessionID, op string, log zerolog.Logger) (func(), error) {
	if guard == nil {
		return func() {}, nil
	}

	token, ok, err := guard.Acquire(ctx, sessionID, op)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Str("op", op).Msg("submission guard unavailable, proceeding unguarded")
		return func() {}, nil
	}
	if !ok {
		return nil, domain.ErrSubmissionInFlight
	}

	return func() {
		// The request context may already be cancelled; the release must still land.
		if err := guard.Release(context.WithoutCancel(ctx), sessionID, token); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Str("op", op).Msg("failed to release submission guard")
		}
	}, nil
}
