package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/usmanhardware/backend/internal/domain/shared"
)

// LogEventPublisher writes committed domain events to the structured
// log. It stands in for a message broker; downstream consumers read the
// event stream from log ingestion.
type LogEventPublisher struct {
	log *zap.Logger
}

func NewLogEventPublisher(log *zap.Logger) *LogEventPublisher {
	return &LogEventPublisher{log: log}
}

// Publish logs one event. It never returns an error; a lost log line
// must not fail the operation that raised the event.
func (p *LogEventPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	log := p.log
	if requestID := GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	log.Info("domain event",
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

var _ shared.EventPublisher = (*LogEventPublisher)(nil)
