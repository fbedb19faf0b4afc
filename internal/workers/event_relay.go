package workers

import (
	"context"
	"log/slog"
	"time"

	"highwayMonitor/internal/domain"
	"highwayMonitor/internal/feed"
	"highwayMonitor/internal/metrics"
)

const DefaultSinkTimeout = 5 * time.Second

// Sink consumes lifecycle events outside the request path.
type Sink struct {
	Name   string
	Handle func(ctx context.Context, evt domain.Event) error
}

// EventRelay holds one feed subscription and hands every event to each
// sink in order. A failing or slow sink only costs its own timeout.
type EventRelay struct {
	hub     *feed.Hub
	sinks   []Sink
	timeout time.Duration
	logger  *slog.Logger
}

func NewEventRelay(hub *feed.Hub, logger *slog.Logger, sinks ...Sink) *EventRelay {
	return &EventRelay{
		hub:     hub,
		sinks:   sinks,
		timeout: DefaultSinkTimeout,
		logger:  logger,
	}
}

func (r *EventRelay) WithTimeout(d time.Duration) *EventRelay {
	r.timeout = d
	return r
}

// Run blocks until ctx is done or the hub closes.
func (r *EventRelay) Run(ctx context.Context) {
	sub := r.hub.Subscribe()
	defer sub.Close()

	r.logger.Info("event relay STARTED", slog.Int("sinks", len(r.sinks)))

	r.consume(ctx, sub.Events())

	r.logger.Info("event relay STOPPED")
}

func (r *EventRelay) consume(ctx context.Context, events <-chan domain.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			for _, sink := range r.sinks {
				r.dispatch(ctx, sink, evt)
			}
		}
	}
}

func (r *EventRelay) dispatch(ctx context.Context, sink Sink, evt domain.Event) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			metrics.RelaySinkFailures.WithLabelValues(sink.Name).Inc()
			r.logger.Error("relay sink panicked", slog.String("sink", sink.Name), slog.Any("panic", rec))
		}
	}()

	if err := sink.Handle(ctx, evt); err != nil {
		metrics.RelaySinkFailures.WithLabelValues(sink.Name).Inc()
		r.logger.Warn("relay sink failed",
			slog.String("sink", sink.Name),
			slog.String("type", string(evt.Type)),
			slog.Any("error", err),
		)
	}
}
