package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

type recordingTrail struct {
	mu     sync.Mutex
	events []ports.AuditEvent
	err    error
}

func (r *recordingTrail) Record(ctx context.Context, event ports.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func (r *recordingTrail) snapshot() []ports.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_PersistsEvents(t *testing.T) {
	trail := &recordingTrail{}
	d := NewDispatcher(4, trail, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Enqueue(ports.AuditEvent{Plate: "ABC1234", RecordID: int64(i)})
	}

	waitFor(t, func() bool { return len(trail.snapshot()) == 10 })
}

func TestDispatcher_SamePlateKeepsOrder(t *testing.T) {
	trail := &recordingTrail{}
	d := NewDispatcher(8, trail, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const n = 50
	for i := 0; i < n; i++ {
		d.Enqueue(ports.AuditEvent{Plate: "XYZ9876", RecordID: int64(i)})
	}

	waitFor(t, func() bool { return len(trail.snapshot()) == n })

	events := trail.snapshot()
	for i, ev := range events {
		if ev.RecordID != int64(i) {
			t.Fatalf("event %d out of order: got record %d", i, ev.RecordID)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, &recordingTrail{}, zerolog.Nop())

	for _, plate := range []string{"ABC1234", "XYZ9876", "QWE5678"} {
		first := d.shardIndex(plate)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(plate); got != first {
				t.Fatalf("shard for %s moved from %d to %d", plate, first, got)
			}
		}
	}
}

func TestDispatcher_WriteFailureDoesNotStopWorker(t *testing.T) {
	trail := &recordingTrail{err: errors.New("insert failed")}
	d := NewDispatcher(1, trail, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.AuditEvent{Plate: "ABC1234", RecordID: 1})

	// Let the failing write drain, then heal the trail and verify the worker
	// is still consuming.
	time.Sleep(20 * time.Millisecond)
	trail.mu.Lock()
	trail.err = nil
	trail.mu.Unlock()

	d.Enqueue(ports.AuditEvent{Plate: "ABC1234", RecordID: 2})
	waitFor(t, func() bool {
		evs := trail.snapshot()
		return len(evs) == 1 && evs[0].RecordID == 2
	})
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingTrail{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
