package nats

import (
	"context"
	"fmt"
	"time"

	"sticky-notes-be/internal/pkg/logger"
	"sticky-notes-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler is a function that processes an event.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber handles listening for events from NATS.
type Subscriber struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	ctx    jetstream.ConsumeContext
	logger logger.ILogger
}

func NewSubscriber(url string, log logger.ILogger) (*Subscriber, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &Subscriber{nc: nc, js: js, logger: log}, nil
}

// Subscribe registers a handler on a durable consumer so no message is lost
// while the process is down. Handler errors Nak the message for redelivery.
func (s *Subscriber) Subscribe(ctx context.Context, subject, durableName string, handler EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    5,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := decode(&nats.Msg{Subject: msg.Subject(), Data: msg.Data(), Header: msg.Headers()})
		if err != nil {
			s.logger.Warn("NATS", "Dropping undecodable event", map[string]interface{}{
				"subject": msg.Subject(),
				"error":   err.Error(),
			})
			_ = msg.Term()
			return
		}

		if err := handler(ctx, event); err != nil {
			s.logger.Error("NATS", "Event handler failed", map[string]interface{}{
				"subject": msg.Subject(),
				"error":   err,
			})
			_ = msg.Nak()
			return
		}

		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	s.ctx = cc

	s.logger.Info("NATS", "Subscribed", map[string]interface{}{
		"subject": subject,
		"durable": durableName,
	})
	return nil
}

func (s *Subscriber) Close() {
	if s.ctx != nil {
		s.ctx.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
