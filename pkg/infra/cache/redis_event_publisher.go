package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/folioworks/folio/pkg/infra/cache/event"
)

type redisEventPublisher struct {
	client Client
}

func NewRedisEventPublisher(client Client) EventPublisher {
	return &redisEventPublisher{
		client: client,
	}
}

func (p *redisEventPublisher) Publish(ctx context.Context, channel Channel, ev event.Event) error {
	data, err := encodeMessage(ev)
	if err != nil {
		return err
	}
	if err := p.client.RedisClient().Publish(ctx, string(channel), data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", ev.Type(), err)
	}
	return nil
}

func encodeMessage(ev event.Event) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ev.Type(), err)
	}
	return json.Marshal(Envelope{
		Type:  ev.Type(),
		Event: b,
	})
}
