package cache

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/folioworks/folio/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

const localBusBuffer = 256

var ErrBusClosed = errors.New("local event bus is closed")

type localMessage struct {
	channel Channel
	event   event.Event
}

// LocalEventBus is the in-process stand-in for redis pub/sub when redis is
// disabled. It is both the publisher and the listener.
type LocalEventBus struct {
	logger      *logrus.Logger
	subscribers *subscriberSet
	messages    chan localMessage
	done        chan struct{}
	closeOnce   sync.Once
}

func NewLocalEventBus(logger *logrus.Logger) *LocalEventBus {
	return &LocalEventBus{
		logger:      logger,
		subscribers: newSubscriberSet(),
		messages:    make(chan localMessage, localBusBuffer),
		done:        make(chan struct{}),
	}
}

func (b *LocalEventBus) Register(eventType reflect.Type, subscriber interface{}) {
	b.subscribers.add(eventType, subscriber)
}

// Publish waits for buffer space rather than dropping the event. It gives up
// when ctx is done or the listener has stopped.
func (b *LocalEventBus) Publish(ctx context.Context, channel Channel, ev event.Event) error {
	select {
	case <-b.done:
		return ErrBusClosed
	default:
	}
	select {
	case b.messages <- localMessage{channel: channel, event: ev}:
		return nil
	case <-b.done:
		return ErrBusClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Listen delivers messages on the given channels until ctx is done. Messages
// on other channels are discarded.
func (b *LocalEventBus) Listen(ctx context.Context, channels ...Channel) {
	wanted := make(map[Channel]struct{}, len(channels))
	for _, ch := range channels {
		wanted[ch] = struct{}{}
	}
	defer b.close()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("local event bus shutting down")
			return
		case msg := <-b.messages:
			if _, ok := wanted[msg.channel]; !ok {
				continue
			}
			b.subscribers.notify(ctx, b.logger, msg.event)
		}
	}
}

func (b *LocalEventBus) close() {
	b.closeOnce.Do(func() { close(b.done) })
}
