package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"bloodlink/pkg/requestcontext"
)

// Sink receives audit events after they are logged.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher logs every event with log_type=audit and hands it to an
// optional asynchronous sink. Emit never fails the caller.
type Publisher struct {
	logger *slog.Logger
	outbox chan<- Event
}

type Option func(*Publisher)

// WithOutbox queues events on ch for a Worker. Events are dropped, with a
// log line, when ch is full.
func WithOutbox(ch chan<- Event) Option {
	return func(p *Publisher) {
		p.outbox = ch
	}
}

func NewPublisher(logger *slog.Logger, opts ...Option) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Publisher{logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit fills in ID, timestamp and request ID when missing, then logs and
// queues the event.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	attrs := []any{
		"log_type", "audit",
		"event_id", event.ID.String(),
		"event", string(event.Name),
		"user_id", event.UserID,
		"request_id", event.RequestID,
	}
	if event.Reason != "" {
		attrs = append(attrs, "reason", event.Reason)
	}
	for k, v := range event.Details {
		attrs = append(attrs, k, v)
	}
	p.logger.InfoContext(ctx, string(event.Name), attrs...)

	if p.outbox == nil {
		return
	}
	select {
	case p.outbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit outbox full, event not forwarded",
			"event_id", event.ID.String(),
			"event", string(event.Name),
		)
	}
}
