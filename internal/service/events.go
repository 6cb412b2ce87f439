package service

import (
	"context"

	"sticky-notes-be/internal/pkg/logger"
	"sticky-notes-be/pkg/events"
)

// publishEvent never fails the caller; a missing or unreachable bus is logged.
func publishEvent(ctx context.Context, publisher events.Publisher, log logger.ILogger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
