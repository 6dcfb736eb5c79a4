package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Publisher delivers domain events to a message bus.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data any) error
	Close() error
}

// NoopPublisher drops every event. It is used when no bus is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close() error                               { return nil }

func encode(eventType string, data any) ([]byte, error) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return payload, nil
}

var (
	_ Publisher = NoopPublisher{}
	_ Publisher = (*RedisPublisher)(nil)
	_ Publisher = (*KafkaPublisher)(nil)
)
