package redis

import (
	"context"
	"testing"
	"time"

	"github.com/foodshare/platform/internal/core/domain"
)

func TestSessionCache_RoundTrip(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewSessionCache(client, time.Hour)
	ctx := context.Background()

	if p, err := c.Load(ctx, "s1"); err != nil || p != nil {
		t.Fatalf("expected empty slot, got %+v, %v", p, err)
	}

	want := &domain.Principal{ID: "1", Email: "a@b.c", Name: "a", Role: domain.RoleNGO, Organization: "Food Bank"}
	if err := c.Save(ctx, "s1", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL(SessionKey("s1")); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
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
	if mr.Exists(SessionKey("s1")) {
		t.Fatalf("slot should be gone")
	}
	if err := c.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clearing an empty slot: %v", err)
	}
}

func TestSessionCache_DefaultTTL(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewSessionCache(client, 0)

	if err := c.Save(context.Background(), "s1", &domain.Principal{ID: "1", Role: domain.RoleDonor}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL(SessionKey("s1")); ttl != defaultSessionTTL {
		t.Fatalf("ttl = %v, want %v", ttl, defaultSessionTTL)
	}
}

func TestSessionCache_CorruptRecord(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewSessionCache(client, 0)

	if err := mr.Set(SessionKey("s1"), "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if p, err := c.Load(context.Background(), "s1"); err == nil || p != nil {
		t.Fatalf("expected decode error, got %+v, %v", p, err)
	}
}

func TestSessionCache_UnknownRoleDecodes(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewSessionCache(client, 0)

	if err := mr.Set(SessionKey("s1"), `{"id":"1","email":"a@b.c","role":"superuser"}`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	p, err := c.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Role != domain.RoleUnrecognized {
		t.Fatalf("role = %v, want unrecognized", p.Role)
	}
}
