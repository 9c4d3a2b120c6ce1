package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/sirupsen/logrus"
)

const reconnectDelay = time.Second

type redisEventListener struct {
	logger      *logrus.Logger
	client      Client
	subscribers *subscriberSet
	registry    map[string]reflect.Type
}

func NewRedisEventListener(
	logger *logrus.Logger,
	client Client,
	registry map[string]reflect.Type,
) EventListener {
	return &redisEventListener{
		logger:      logger,
		client:      client,
		subscribers: newSubscriberSet(),
		registry:    registry,
	}
}

func (r *redisEventListener) Register(eventType reflect.Type, subscriber interface{}) {
	r.subscribers.add(eventType, subscriber)
}

func (r *redisEventListener) Listen(ctx context.Context, channels ...Channel) {
	channelNames := make([]string, 0, len(channels))
	for _, ch := range channels {
		channelNames = append(channelNames, string(ch))
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("redis pubsub listener shutting down")
			return
		default:
		}

		r.listenWithReconnect(ctx, channelNames)

		if ctx.Err() != nil {
			return
		}

		r.logger.Warn("redis pubsub disconnected, reconnecting in 1s...")
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (r *redisEventListener) listenWithReconnect(ctx context.Context, channelNames []string) {
	pubSub := r.client.RedisClient().Subscribe(ctx, channelNames...)
	defer func() { _ = pubSub.Close() }()

	r.logger.WithField("channels", channelNames).Debug("redis pubsub connected")

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = pubSub.Close()
		case <-stop:
		}
	}()

	for msg := range pubSub.Channel() {
		if ctx.Err() != nil {
			return
		}
		r.handleMessage(ctx, msg.Payload)
	}
}

func (r *redisEventListener) handleMessage(ctx context.Context, payload string) {
	concreteEvent, err := decodeMessage([]byte(payload), r.registry)
	if err != nil {
		r.logger.WithError(err).Error("error decoding redis message")
		return
	}
	r.subscribers.notify(ctx, r.logger, concreteEvent)
}

func decodeMessage(payload []byte, registry map[string]reflect.Type) (interface{}, error) {
	var envelope Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, err
	}
	concreteType, ok := registry[envelope.Type]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", envelope.Type)
	}
	eventPtr := reflect.New(concreteType)
	if err := json.Unmarshal(envelope.Event, eventPtr.Interface()); err != nil {
		return nil, fmt.Errorf("error unmarshalling %s: %w", envelope.Type, err)
	}
	return eventPtr.Elem().Interface(), nil
}
