package service

import (
	"context"
	"time"

	"sticky-notes-be/internal/pkg/logger"
	"sticky-notes-be/pkg/events"
	pktNats "sticky-notes-be/pkg/nats"
)

const (
	auditSubject = pktNats.SubjectPrefix + ">"
	auditDurable = "sticky-notes-audit"
)

type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

// IConsumerService writes every domain event on the bus to the audit log.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber EventSubscriber
	logger     logger.ILogger
}

func NewConsumerService(subscriber EventSubscriber, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	return cs.subscriber.Subscribe(ctx, auditSubject, auditDurable, cs.handle)
}

func (cs *consumerService) handle(ctx context.Context, event events.Event) error {
	cs.logger.Info("AUDIT", event.EventType(), map[string]interface{}{
		"occurred_at": event.Timestamp().Format(time.RFC3339),
		"payload":     event.Payload(),
	})
	return nil
}
