package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher appends events to a Redis stream with XADD.
type RedisPublisher struct {
	client redis.UniversalClient
	stream string
	maxLen int64
}

// NewRedisPublisher publishes to stream, trimming it to roughly maxLen entries (0 keeps everything).
func NewRedisPublisher(client redis.UniversalClient, stream string, maxLen int64) *RedisPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisPublisher{client: client, stream: stream, maxLen: maxLen}
}

func (p *RedisPublisher) Publish(ctx context.Context, eventType string, data any) error {
	payload, err := encode(eventType, data)
	if err != nil {
		return err
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: p.maxLen > 0,
		Values: map[string]any{
			"type":  eventType,
			"event": payload,
		},
	}
	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event to stream %s: %w", p.stream, err)
	}
	return nil
}

// Close is a no-op: the client is shared and owned by main.
func (p *RedisPublisher) Close() error {
	return nil
}
