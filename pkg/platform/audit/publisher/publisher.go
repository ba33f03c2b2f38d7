// Package publisher emits audit events synchronously or through a buffered
// background worker.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	audit "unitconv/pkg/platform/audit"
	"unitconv/pkg/platform/audit/worker"
	"unitconv/pkg/platform/sentinel"
	"unitconv/pkg/requestcontext"
)

// ErrBufferFull is returned by Emit in async mode when the buffer has no room.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher stamps events and hands them to a store.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger
	buffer int

	mu     sync.RWMutex
	closed bool
	inbox  chan audit.Event
	done   chan struct{}
}

type Option func(*Publisher)

// WithAsyncBuffer switches to async mode with a buffer of n events.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.buffer = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher returns a Publisher writing to store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer > 0 {
		p.inbox = make(chan audit.Event, p.buffer)
		p.done = make(chan struct{})
		w := worker.NewWorker(store, p.inbox, p.logger)
		go func() {
			defer close(p.done)
			_ = w.Run(context.Background())
		}()
	}
	return p
}

// Emit fills Timestamp, RequestID, TraceID and Category when unset, then
// stores the event or queues it.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.TraceID == "" {
		event.TraceID = requestcontext.TraceID(ctx)
	}
	if event.Category == "" {
		event.Category = audit.CategoryFor(event.Action)
	}

	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return sentinel.ErrClosed
	}
	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"request_id", event.RequestID,
		)
		return ErrBufferFull
	}
}

// Close stops accepting events and waits for queued events to be stored.
// It is safe to call more than once.
func (p *Publisher) Close() {
	if p.inbox == nil {
		return
	}
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()
	<-p.done
}
