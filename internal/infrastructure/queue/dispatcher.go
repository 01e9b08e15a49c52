package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the plate, guaranteeing per-plate write ordering in the audit
// trail. Persistence is best-effort: a failed write is logged, never
// surfaced to the inspection that produced it.
type Dispatcher struct {
	workers []chan ports.AuditEvent
	trail   ports.AuditTrail
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, trail ports.AuditTrail, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuditEvent, numWorkers),
		trail:   trail,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its plate.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.AuditEvent) {
	d.workers[d.shardIndex(event.Plate)] <- event
}

// shardIndex maps a plate deterministically to a worker index.
func (d *Dispatcher) shardIndex(plate string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(plate))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.trail.Record(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("plate", event.Plate).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
