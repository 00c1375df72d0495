package metrics

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const publishTimeout = 10 * time.Second

// Broadcaster is the single chokepoint write handlers call after a committed
// write. It recomputes the aggregates from the store rather than taking a
// delta from the caller, so incremental accounting bugs cannot drift the
// dashboard.
type Broadcaster struct {
	registry  *Registry
	collector *Collector
	logger    zerolog.Logger
}

func NewBroadcaster(registry *Registry, collector *Collector, logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{registry: registry, collector: collector, logger: logger}
}

// Registry exposes the observer set for the connection lifecycle handler.
func (b *Broadcaster) Registry() *Registry {
	return b.registry
}

// Snapshot computes one fresh snapshot, used for the handshake send to a
// newly connected observer.
func (b *Broadcaster) Snapshot(ctx context.Context) (Snapshot, error) {
	return b.collector.Collect(ctx)
}

// Notify schedules a broadcast on a detached goroutine. It never blocks the
// caller and never reports an error: a failed broadcast must not fail the
// write that triggered it.
func (b *Broadcaster) Notify() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		b.Publish(ctx)
	}()
}

// Publish performs one broadcast cycle: skip entirely when nobody is
// listening, otherwise one aggregate pass and one fanout.
func (b *Broadcaster) Publish(ctx context.Context) {
	if b.registry.Size() == 0 {
		return
	}
	snap, err := b.collector.Collect(ctx)
	if err != nil {
		b.logger.Warn().Err(err).Msg("metrics broadcast skipped")
		return
	}
	b.registry.Broadcast(snap)
}
