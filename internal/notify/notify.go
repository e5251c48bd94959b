// Package notify delivers moderation notifications to one or more sinks.
package notify

import (
	"context"
	"time"

	"github.com/robalyx/headline/internal/database/types"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// DefaultTimeout bounds how long a dispatch waits for its sinks.
const DefaultTimeout = 10 * time.Second

// Sink receives moderation notifications.
type Sink interface {
	NotifySpamFlagged(ctx context.Context, story *types.Story)
	NotifyApproved(ctx context.Context, story *types.Story)
}

// Dispatcher fans each notification out to every sink concurrently.
// A panicking sink is logged and does not affect the others.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	logger  *zap.Logger
}

// NewDispatcher creates a dispatcher over the given sinks.
func NewDispatcher(logger *zap.Logger, timeout time.Duration, sinks ...Sink) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		sinks:   sinks,
		timeout: timeout,
		logger:  logger.Named("notify_dispatcher"),
	}
}

// NotifySpamFlagged forwards a spam suspension to every sink.
func (d *Dispatcher) NotifySpamFlagged(ctx context.Context, story *types.Story) {
	d.dispatch(ctx, "spam_flagged", story, Sink.NotifySpamFlagged)
}

// NotifyApproved forwards an approval to every sink.
func (d *Dispatcher) NotifyApproved(ctx context.Context, story *types.Story) {
	d.dispatch(ctx, "approved", story, Sink.NotifyApproved)
}

func (d *Dispatcher) dispatch(
	ctx context.Context, event string, story *types.Story, send func(Sink, context.Context, *types.Story),
) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	p := pool.New().WithMaxGoroutines(max(len(d.sinks), 1))
	for _, sink := range d.sinks {
		p.Go(func() {
			var catcher panics.Catcher
			catcher.Try(func() { send(sink, ctx, story.Clone()) })

			if recovered := catcher.Recovered(); recovered != nil {
				d.logger.Error("Notification sink panicked",
					zap.String("event", event),
					zap.String("storyID", story.ID),
					zap.Error(recovered.AsError()))
			}
		})
	}
	p.Wait()
}
