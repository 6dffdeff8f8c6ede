package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/foodshare/platform/internal/core/ports"
)

// Store restores sessions from the durable cache.
type Store struct {
	cache ports.SessionCache
	guard ports.SubmissionGuard
	log   zerolog.Logger
}

func NewStore(cache ports.SessionCache, guard ports.SubmissionGuard, log zerolog.Logger) *Store {
	return &Store{cache: cache, guard: guard, log: log}
}

// Restore reads the client's slot once and returns a resolved session. A
// cache failure degrades to an anonymous session rather than failing the
// page.
func (st *Store) Restore(ctx context.Context, id string) *Session {
	s := newSession(id)

	p, err := st.cache.Load(ctx, id)
	if err != nil {
		st.log.Warn().Err(err).Str("session_id", id).Msg("session cache read failed, continuing anonymous")
		p = nil
	}

	// Only a login or register in flight shows as loading; a food post or
	// claim holds the same guard without touching the session.
	inFlight := false
	if st.guard != nil {
		op, err := st.guard.Holder(ctx, id)
		if err != nil {
			st.log.Debug().Err(err).Str("session_id", id).Msg("submission guard lookup failed")
		}
		inFlight = establishing(op)
	}

	s.resolve(p, inFlight)
	return s
}
