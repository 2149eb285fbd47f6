package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreamPublisher appends events to a Redis stream for external consumers.
type StreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewStreamPublisher returns nil when client is nil.
func NewStreamPublisher(client *redis.Client, stream string, maxLen int64) *StreamPublisher {
	if client == nil {
		return nil
	}
	return &StreamPublisher{client: client, stream: stream, maxLen: maxLen}
}

// Handle is an EventHandler that writes the event as a stream entry.
func (p *StreamPublisher) Handle(ctx context.Context, event Event) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.Type, err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"id":          event.ID,
			"type":        string(event.Type),
			"resource_id": event.ResourceID,
			"actor":       event.Actor.Email,
			"timestamp":   event.Timestamp.UTC().Format(time.RFC3339Nano),
			"payload":     string(payload),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}

// Stream returns the target stream key.
func (p *StreamPublisher) Stream() string {
	if p == nil {
		return ""
	}
	return p.stream
}
