// Package notify fans out inbox-arrival events across replicas via Redis
// Pub/Sub, so every replica's websocket hub learns about a new message
// regardless of which replica the sender's request landed on. Never
// carries message content, only {message_id, expiry}.
package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "vaultchat:inbox:"

// Event is the payload broadcast on a new inbox arrival.
type Event struct {
	Receiver  string `json:"receiver"`
	MessageID string `json:"message_id"`
	Expiry    string `json:"expiry"`
}

// Bus publishes and subscribes to inbox events. A nil client is valid —
// Publish becomes a no-op and Subscribe never delivers — for single-
// replica deployments with no Redis configured.
type Bus struct {
	client *redis.Client
	log    *zap.Logger
}

// New returns a Bus backed by client, which may be nil.
func New(client *redis.Client, log *zap.Logger) *Bus {
	return &Bus{client: client, log: log}
}

// Configured reports whether a real Redis client backs this Bus.
func (b *Bus) Configured() bool {
	return b.client != nil
}

func channel(receiver string) string {
	return channelPrefix + receiver
}

// Publish broadcasts event to every subscriber of receiver's channel.
func (b *Bus) Publish(ctx context.Context, event Event) {
	if b.client == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		b.log.Warn("failed to marshal inbox event", zap.Error(err))
		return
	}
	if err := b.client.Publish(ctx, channel(event.Receiver), data).Err(); err != nil {
		b.log.Warn("failed to publish inbox event", zap.Error(err))
	}
}

// Subscribe returns a channel of events for receiver. The returned func
// must be called to release the underlying subscription. If no Redis
// client is configured, it returns an already-closed channel and a no-op
// release func.
func (b *Bus) Subscribe(ctx context.Context, receiver string) (<-chan Event, func()) {
	out := make(chan Event)
	if b.client == nil {
		close(out)
		return out, func() {}
	}

	sub := b.client.Subscribe(ctx, channel(receiver))
	msgs := sub.Channel()

	go func() {
		defer close(out)
		for msg := range msgs {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.log.Warn("failed to decode inbox event", zap.Error(err))
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { sub.Close() }
}
