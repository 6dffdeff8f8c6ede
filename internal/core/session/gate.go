package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/core/ports"
	"github.com/foodshare/platform/internal/pkg/latency"
)

const defaultDelay = time.Second

// Gate establishes, replaces and clears sessions. It is the only writer of a
// Session and of its durable cache slot.
type Gate struct {
	auth  ports.Authenticator
	cache ports.SessionCache
	guard ports.SubmissionGuard
	delay time.Duration
	wait  latency.Func
	log   zerolog.Logger
}

// GateOption customises a Gate.
type GateOption func(*Gate)

// WithDelay sets the simulated backend latency of login and register.
func WithDelay(d time.Duration) GateOption {
	return func(g *Gate) { g.delay = d }
}

// WithWait replaces the latency simulation, typically with latency.None in tests.
func WithWait(fn latency.Func) GateOption {
	return func(g *Gate) { g.wait = fn }
}

func NewGate(auth ports.Authenticator, cache ports.SessionCache, guard ports.SubmissionGuard, log zerolog.Logger, opts ...GateOption) *Gate {
	g := &Gate{
		auth:  auth,
		cache: cache,
		guard: guard,
		delay: defaultDelay,
		wait:  latency.Simulate,
		log:   log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Login authenticates and commits the resulting principal to s and its slot.
func (g *Gate) Login(ctx context.Context, s *Session, email, password string, role domain.Role) (*domain.Principal, error) {
	return g.establish(ctx, s, OpLogin, func(ctx context.Context) (*domain.Principal, error) {
		return g.auth.Authenticate(ctx, email, password, role)
	})
}

// Register enrolls a new account and commits its principal to s and its slot.
func (g *Gate) Register(ctx context.Context, s *Session, input ports.RegisterInput) (*domain.Principal, error) {
	return g.establish(ctx, s, OpRegister, func(ctx context.Context) (*domain.Principal, error) {
		return g.auth.Enroll(ctx, input)
	})
}

// Logout clears s and removes its slot. Logging out an anonymous session is
// a no-op.
func (g *Gate) Logout(ctx context.Context, s *Session) error {
	if err := g.cache.Clear(ctx, s.ID()); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.clear()
	g.log.Info().Str("session_id", s.ID()).Msg("session cleared")
	return nil
}

func (g *Gate) establish(ctx context.Context, s *Session, op string, resolve func(context.Context) (*domain.Principal, error)) (*domain.Principal, error) {
	release, err := Hold(ctx, g.guard, s.ID(), op, g.log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer release()

	s.begin()

	p, err := resolve(ctx)
	if err != nil {
		s.abort()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := g.wait(ctx, g.delay); err != nil {
		s.abort()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := g.cache.Save(ctx, s.ID(), p); err != nil {
		s.abort()
		return nil, fmt.Errorf("%s: persist session: %w", op, err)
	}
	s.commit(p)

	g.log.Info().
		Str("session_id", s.ID()).
		Str("op", op).
		Str("role", p.Role.String()).
		Msg("session established")

	return p.Clone(), nil
}
