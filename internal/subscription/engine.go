// Package subscription implements the seam guarantee: a subscription
// transitions from a historical range read to live-tail delivery with no
// gaps and no duplicates, by registering the live notifier before the
// historical watermark is ever snapshotted.
package subscription

import (
	"context"
	"fmt"

	"github.com/meilisearch/MeiliES/internal/command"
	"github.com/meilisearch/MeiliES/internal/eventlog"
	"github.com/meilisearch/MeiliES/internal/resp"
	"github.com/meilisearch/MeiliES/internal/stream"
	"github.com/meilisearch/MeiliES/pkg/log"
)

// Engine runs one seam per StreamSubscription, reading from the shared
// per-stream log and writing RESP records to an output channel owned by
// the connection.
type Engine struct {
	registry *eventlog.Registry
	logger   log.Logger
	bufSize  int
}

// NewEngine constructs an Engine. bufSize is the per-subscription live
// buffer's high-water mark: once a subscriber falls this far behind, its
// subscription fails with ErrSlowConsumer.
func NewEngine(registry *eventlog.Registry, logger log.Logger, bufSize int) *Engine {
	if bufSize <= 0 {
		bufSize = 1024
	}
	return &Engine{registry: registry, logger: logger, bufSize: bufSize}
}

// Run services one StreamSubscription end to end: it registers the live
// notifier, emits the acknowledgement, replays history if requested,
// splices into the live tail with the seam's dedup rule, and emits a
// completion or error record before returning.
//
// Run blocks until the subscription completes (bounded range exhausted),
// fails (ErrSlowConsumer, a storage error), the server is shutting down
// (ErrShuttingDown), or ctx is canceled by the connection closing.
func (e *Engine) Run(ctx context.Context, shuttingDown <-chan struct{}, sub stream.Subscription, out chan<- resp.Value) error {
	if sub.Bounded() && sub.From >= sub.To {
		if err := e.emit(ctx, out, command.SubscribedRecord(sub.Name)); err != nil {
			return err
		}
		return e.emit(ctx, out, command.EndOfStreamRecord(sub.Name))
	}

	l, err := e.registry.Open(sub.Name)
	if err != nil {
		return fmt.Errorf("subscription: opening stream %q: %w", sub.Name, err)
	}

	// Step 1: register the live notifier and begin buffering before we
	// ever look at the stream's current tail.
	id, items, overflowed := l.Subscribe(e.bufSize)
	defer l.Unsubscribe(id)

	// Step 2: snapshot the tail now that nothing appended from here on
	// can be missed.
	last, hasLast := l.LastEventNumber()

	// Step 3: acknowledge.
	if err := e.emit(ctx, out, command.SubscribedRecord(sub.Name)); err != nil {
		return err
	}

	var maxEmitted uint64
	var emittedAny bool

	// Step 4: catch up on history, if requested and any exists.
	if sub.FromSet && hasLast && sub.From <= last {
		hist, err := l.ReadRange(sub.From, last+1)
		if err != nil {
			e.emitErr(ctx, out, sub.Name, err)
			return err
		}
		for _, it := range hist {
			if sub.Bounded() && it.Seq >= sub.To {
				break
			}
			if err := e.emit(ctx, out, command.EventRecord(sub.Name, it.Seq, it.EventName, it.EventData)); err != nil {
				return err
			}
			maxEmitted, emittedAny = it.Seq, true
			if sub.Bounded() && it.Seq == sub.To-1 {
				return e.emit(ctx, out, command.EndOfStreamRecord(sub.Name))
			}
		}
	}

	// Steps 5-6: drain whatever the live buffer accumulated during catch-up,
	// then keep consuming it directly — the same dedup rule covers both,
	// since the buffered channel makes no distinction between the two.
	return e.pumpLive(ctx, shuttingDown, sub, out, items, overflowed, maxEmitted, emittedAny)
}

func (e *Engine) pumpLive(
	ctx context.Context,
	shuttingDown <-chan struct{},
	sub stream.Subscription,
	out chan<- resp.Value,
	items <-chan eventlog.Item,
	overflowed <-chan struct{},
	maxEmitted uint64,
	emittedAny bool,
) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-shuttingDown:
			e.emitErr(ctx, out, sub.Name, ErrShuttingDown)
			return ErrShuttingDown
		case <-overflowed:
			// A slow consumer is not draining out, so the error record is
			// offered without blocking.
			select {
			case out <- command.ErrorRecord(sub.Name, ErrSlowConsumer.Error()):
			default:
			}
			return ErrSlowConsumer
		case it, ok := <-items:
			if !ok {
				return nil
			}
			if emittedAny && it.Seq <= maxEmitted {
				continue
			}
			if !emittedAny && sub.FromSet && it.Seq < sub.From {
				continue
			}
			if sub.Bounded() && it.Seq >= sub.To {
				continue
			}
			select {
			case out <- command.EventRecord(sub.Name, it.Seq, it.EventName, it.EventData):
			case <-ctx.Done():
				return ctx.Err()
			case <-overflowed:
				return ErrSlowConsumer
			}
			maxEmitted, emittedAny = it.Seq, true
			if sub.Bounded() && it.Seq == sub.To-1 {
				return e.emit(ctx, out, command.EndOfStreamRecord(sub.Name))
			}
		}
	}
}

func (e *Engine) emit(ctx context.Context, out chan<- resp.Value, v resp.Value) error {
	select {
	case out <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) emitErr(ctx context.Context, out chan<- resp.Value, streamName string, err error) {
	_ = e.emit(ctx, out, command.ErrorRecord(streamName, err.Error()))
}
