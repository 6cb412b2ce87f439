package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sticky-notes-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	StreamName     = "EVENTS"
	SubjectPrefix  = "events."
	headerType     = "Event-Type"
	headerOccurred = "Event-Occurred-At"
)

// Publisher handles sending events to the NATS bus.
type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewPublisher(url string) (*Publisher, error) {
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectPrefix + ">"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
	})
	if err != nil {
		log.Printf("Warn: Failed to ensure stream '%s': %v", StreamName, err)
	}

	return &Publisher{nc: nc, js: js}, nil
}

// Publish sends the payload as JSON on events.<TYPE>; type and time travel in headers.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}

	if _, err := p.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", msg.Subject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

func encode(event events.Event) (*nats.Msg, error) {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := nats.NewMsg(SubjectPrefix + event.EventType())
	msg.Data = data
	msg.Header.Set(headerType, event.EventType())
	msg.Header.Set(headerOccurred, event.Timestamp().Format(time.RFC3339Nano))
	return msg, nil
}

func decode(msg *nats.Msg) (events.BaseEvent, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return events.BaseEvent{}, err
	}

	eventType := msg.Header.Get(headerType)
	if eventType == "" && len(msg.Subject) > len(SubjectPrefix) {
		eventType = msg.Subject[len(SubjectPrefix):]
	}

	occurredAt, err := time.Parse(time.RFC3339Nano, msg.Header.Get(headerOccurred))
	if err != nil {
		occurredAt = time.Now().UTC()
	}

	return events.BaseEvent{Type: eventType, Data: payload, OccurredAt: occurredAt}, nil
}
