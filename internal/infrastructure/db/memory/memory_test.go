package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/foodshare/platform/internal/core/domain"
)

func TestSessionCache_RoundTrip(t *testing.T) {
	c := NewSessionCache()
	ctx := context.Background()

	if p, err := c.Load(ctx, "s1"); err != nil || p != nil {
		t.Fatalf("expected empty slot, got %+v, %v", p, err)
	}

	want := &domain.Principal{ID: "1", Email: "a@b.c", Name: "a", Role: domain.RoleDonor, Phone: "123"}
	if err := c.Save(ctx, "s1", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := c.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch: %+v != %+v", got, want)
	}

	if err := c.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := c.Raw("s1"); ok {
		t.Fatalf("slot should be gone")
	}
}

func TestSessionCache_CorruptRecord(t *testing.T) {
	c := NewSessionCache()
	c.Put("s1", []byte("{not json"))
	if _, err := c.Load(context.Background(), "s1"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSubmissionGuard(t *testing.T) {
	g := NewSubmissionGuard()
	ctx := context.Background()

	token, ok, _ := g.Acquire(ctx, "s1", "login")
	if !ok {
		t.Fatalf("first acquire should succeed")
	}
	if _, ok, _ := g.Acquire(ctx, "s1", "post"); ok {
		t.Fatalf("second acquire should fail")
	}
	if op, _ := g.Holder(ctx, "s1"); op != "login" {
		t.Fatalf("expected login to hold the session, got %q", op)
	}
	_ = g.Release(ctx, "s1", token)
	if _, ok, _ := g.Acquire(ctx, "s1", "post"); !ok {
		t.Fatalf("acquire after release should succeed")
	}
}

func TestSubmissionGuard_ReleaseRequiresOwnerToken(t *testing.T) {
	g := NewSubmissionGuard()
	ctx := context.Background()

	current, _, _ := g.Acquire(ctx, "s1", "claim")
	_ = g.Release(ctx, "s1", "stale-token")
	if op, _ := g.Holder(ctx, "s1"); op != "claim" {
		t.Fatalf("a foreign token must not free the lock")
	}
	_ = g.Release(ctx, "s1", current)
	if op, _ := g.Holder(ctx, "s1"); op != "" {
		t.Fatalf("owner release should free the lock, got %q", op)
	}
}

func TestAccountRepository_UniqueEmail(t *testing.T) {
	r := NewAccountRepository()
	ctx := context.Background()

	if _, err := r.Create(ctx, &domain.Account{ID: "1", Email: "Ann@Example.org"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.Create(ctx, &domain.Account{ID: "2", Email: "ann@example.org "}); !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
	a, err := r.FindByEmail(ctx, "ANN@example.org")
	if err != nil || a.ID != "1" {
		t.Fatalf("unexpected lookup result: %+v, %v", a, err)
	}
	if _, err := r.FindByEmail(ctx, "ghost@example.org"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
