package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"shipment-reconciler/internal/core/cache"
	"shipment-reconciler/internal/features/notifications/domain"
)

// RedisPublisher pushes notifications onto a per-recipient pub/sub channel,
// e.g. "shipment-updates:<owner id>".
type RedisPublisher struct {
	publisher cache.Publisher
	prefix    string
}

// NewRedisPublisher creates a RedisPublisher on top of the cache adapter.
func NewRedisPublisher(p cache.Publisher, channelPrefix string) *RedisPublisher {
	return &RedisPublisher{publisher: p, prefix: channelPrefix}
}

// Channel returns the pub/sub channel of a recipient.
func (p *RedisPublisher) Channel(recipientID string) string {
	return fmt.Sprintf("%s:%s", p.prefix, recipientID)
}

// Publish sends n. Having no live subscriber is not an error.
func (p *RedisPublisher) Publish(ctx context.Context, n domain.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if _, err := p.publisher.Publish(ctx, p.Channel(n.RecipientID), data); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}
