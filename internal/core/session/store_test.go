package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/infrastructure/db/memory"
)

type failingCache struct{}

func (failingCache) Load(context.Context, string) (*domain.Principal, error) {
	return nil, errors.New("redis down")
}
func (failingCache) Save(context.Context, string, *domain.Principal) error { return nil }
func (failingCache) Clear(context.Context, string) error                   { return nil }

func TestNewSession_StartsUnknownAndLoading(t *testing.T) {
	s := newSession("sid")
	if s.State() != StateUnknown || !s.IsLoading() {
		t.Fatalf("fresh session should be unknown and loading")
	}
}

func TestStore_RestoreAnonymous(t *testing.T) {
	st := NewStore(memory.NewSessionCache(), nil, zerolog.Nop())
	s := st.Restore(context.Background(), "sid")

	if s.State() != StateAnonymous || s.Get() != nil || s.IsLoading() {
		t.Fatalf("expected resolved anonymous session, got %v", s.State())
	}
}

func TestStore_RestoreAuthenticated(t *testing.T) {
	cache := memory.NewSessionCache()
	want := &domain.Principal{ID: "1", Email: "a@b.c", Name: "a", Role: domain.RoleNGO}
	_ = cache.Save(context.Background(), "sid", want)

	s := NewStore(cache, nil, zerolog.Nop()).Restore(context.Background(), "sid")
	if s.State() != StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", s.State())
	}
	if got := s.Get(); *got != *want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestStore_UnreadableCacheDegradesToAnonymous(t *testing.T) {
	s := NewStore(failingCache{}, nil, zerolog.Nop()).Restore(context.Background(), "sid")
	if s.State() != StateAnonymous {
		t.Fatalf("expected anonymous, got %v", s.State())
	}

	cache := memory.NewSessionCache()
	cache.Put("sid", []byte("garbage"))
	s = NewStore(cache, nil, zerolog.Nop()).Restore(context.Background(), "sid")
	if s.State() != StateAnonymous {
		t.Fatalf("expected anonymous for corrupt record, got %v", s.State())
	}
}

func TestSession_GetReturnsCopy(t *testing.T) {
	s := newSession("sid")
	s.resolve(&domain.Principal{Name: "a", Role: domain.RoleDonor}, false)

	p := s.Get()
	p.Name = "mutated"
	if s.Get().Name != "a" {
		t.Fatalf("caller mutation leaked into the session")
	}
}

func TestSession_ResolveOnlyOnce(t *testing.T) {
	s := newSession("sid")
	s.resolve(nil, false)
	s.resolve(&domain.Principal{Role: domain.RoleAdmin}, false)
	if s.State() != StateAnonymous {
		t.Fatalf("unknown must not be re-entered")
	}
}

func TestStore_LoadingOnlyWhileEstablishing(t *testing.T) {
	tests := []struct {
		op   string
		want bool
	}{
		{OpLogin, true},
		{OpRegister, true},
		{OpPost, false},
		{OpClaim, false},
	}
	for _, tc := range tests {
		t.Run(tc.op, func(t *testing.T) {
			ctx := context.Background()
			guard := memory.NewSubmissionGuard()
			if _, ok, _ := guard.Acquire(ctx, "sid", tc.op); !ok {
				t.Fatalf("acquire failed")
			}
			s := NewStore(memory.NewSessionCache(), guard, zerolog.Nop()).Restore(ctx, "sid")
			if s.IsLoading() != tc.want {
				t.Fatalf("IsLoading = %v while %s holds the guard, want %v", s.IsLoading(), tc.op, tc.want)
			}
		})
	}
}
