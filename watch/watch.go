package watch

import (
	"context"
	"sync/atomic"

	"github.com/guiguan/caster"
	"github.com/npillmayer/btindex"
)

// Broadcaster publishes btindex events to any number of subscribers.
// Broadcaster implements interface btindex.Observer.
type Broadcaster struct {
	cast    *caster.Caster
	lossy   bool
	dropped atomic.Uint64
}

var _ btindex.Observer = (*Broadcaster)(nil)

// New creates a Broadcaster which delivers every event to every subscriber.
// The broadcaster is closed when ctx is done; ctx may be nil.
func New(ctx context.Context) *Broadcaster {
	return &Broadcaster{cast: caster.New(ctx)}
}

// NewLossy creates a Broadcaster which never blocks the tree. Events are
// dropped if a subscriber's buffer is full.
func NewLossy(ctx context.Context) *Broadcaster {
	return &Broadcaster{cast: caster.New(ctx), lossy: true}
}

// Observe publishes e to all current subscribers.
// (Part of interface btindex.Observer)
func (b *Broadcaster) Observe(e btindex.Event) {
	if b.lossy {
		if !b.cast.TryPub(e) {
			b.dropped.Add(1)
			tracer().Debugf("dropped event %v", e)
		}
		return
	}
	if !b.cast.Pub(e) {
		tracer().Debugf("broadcaster closed, event %v not published", e)
	}
}

// Subscribe returns a channel of events published from now on. The channel
// buffers up to capacity events and is closed when ctx is done or the
// broadcaster is closed. ok is false if the broadcaster has already been
// closed, or is closed while subscribing.
func (b *Broadcaster) Subscribe(ctx context.Context, capacity uint) (events <-chan btindex.Event, ok bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	sub, _ := b.cast.Sub(ctx, capacity)
	// Sub reports ok even for a closed caster; it then returns once done is closed.
	select {
	case <-b.cast.Done():
		return nil, false
	default:
	}
	out := make(chan btindex.Event, capacity)
	go func() {
		defer close(out)
		for msg := range sub {
			e, isEvent := msg.(btindex.Event)
			if !isEvent {
				continue
			}
			select {
			case out <- e:
			case <-ctx.Done():
				b.cast.Unsub(sub)
				return
			}
		}
	}()
	return out, true
}

// Dropped returns the number of events a lossy broadcaster could not deliver.
func (b *Broadcaster) Dropped() uint64 {
	return b.dropped.Load()
}

// Close closes the broadcaster and all subscription channels.
func (b *Broadcaster) Close() {
	b.cast.Close()
}
