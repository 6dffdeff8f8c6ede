package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type lease struct {
	op    string
	token string
}

// SubmissionGuard is a process-local table of sessions with a submission in flight.
type SubmissionGuard struct {
	mu   sync.Mutex
	held map[string]lease
}

func NewSubmissionGuard() *SubmissionGuard {
	return &SubmissionGuard{held: make(map[string]lease)}
}

func (g *SubmissionGuard) Acquire(_ context.Context, sessionID, op string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.held[sessionID]; ok {
		return "", false, nil
	}
	l := lease{op: op, token: uuid.NewString()}
	g.held[sessionID] = l
	return l.token, true, nil
}

// Release frees the session only if token is the current holder's.
func (g *SubmissionGuard) Release(_ context.Context, sessionID, token string) error {
	g.mu.Lock()
	if l, ok := g.held[sessionID]; ok && l.token == token {
		delete(g.held, sessionID)
	}
	g.mu.Unlock()
	return nil
}

func (g *SubmissionGuard) Holder(_ context.Context, sessionID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.held[sessionID].op, nil
}
