package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodshare/platform/internal/core/ports"
)

type recordingNotifier struct {
	mu    sync.Mutex
	got   []ports.DonationNotification
	done  chan struct{}
	want  int
	fail  string
	count int
}

func newRecordingNotifier(want int) *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}), want: want}
}

func (r *recordingNotifier) Notify(_ context.Context, n ports.DonationNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	if r.count == r.want {
		defer close(r.done)
	}
	if n.DonationID == r.fail {
		return errors.New("smtp down")
	}
	r.got = append(r.got, n)
	return nil
}

func TestDispatcher_PreservesPerDonorOrder(t *testing.T) {
	n := newRecordingNotifier(6)
	d := NewDispatcher(3, n, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	ids := []string{"a1", "a2", "a3", "a4", "a5", "a6"}
	for _, id := range ids {
		if err := d.Enqueue(ctx, ports.DonationNotification{DonationID: id, DonorEmail: "same@donor.org"}); err != nil {
			t.Fatalf("enqueue %s: %v", id, err)
		}
	}

	select {
	case <-n.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for notifications")
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for i, got := range n.got {
		if got.DonationID != ids[i] {
			t.Fatalf("position %d: expected %s, got %s", i, ids[i], got.DonationID)
		}
	}
}

func TestDispatcher_FailedDeliveryDoesNotStopWorker(t *testing.T) {
	n := newRecordingNotifier(2)
	n.fail = "bad"
	d := NewDispatcher(1, n, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	_ = d.Enqueue(ctx, ports.DonationNotification{DonationID: "bad"})
	_ = d.Enqueue(ctx, ports.DonationNotification{DonationID: "good"})

	select {
	case <-n.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for notifications")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.got) != 1 || n.got[0].DonationID != "good" {
		t.Fatalf("unexpected deliveries: %+v", n.got)
	}
}

func TestDispatcher_EnqueueAfterStop(t *testing.T) {
	d := NewDispatcher(2, NewLogNotifier(zerolog.Nop()), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	d.Wait()

	deadline := time.Now().Add(2 * time.Second)
	for {
		err := d.Enqueue(context.Background(), ports.DonationNotification{DonationID: "late"})
		if errors.Is(err, ErrDispatcherStopped) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected ErrDispatcherStopped, got %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestShardIndex_Deterministic(t *testing.T) {
	d := NewDispatcher(5, nil, zerolog.Nop())
	a := d.shardIndex("donor@example.org")
	if a != d.shardIndex("donor@example.org") {
		t.Fatalf("shard index must be stable")
	}
	if a < 0 || a >= 5 {
		t.Fatalf("shard index out of range: %d", a)
	}
}
