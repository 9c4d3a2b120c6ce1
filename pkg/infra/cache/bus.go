package cache

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/folioworks/folio/pkg/infra/cache/event"
)

// Channel names a pub/sub topic. Every instance of the service listens on
// the same channels, so a content change seen by one of them reaches all.
type Channel string

const ContentChannel Channel = "folio:content"

// Envelope is the wire form of an event: the registered type name plus the
// event encoded as JSON.
type Envelope struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}

//go:generate mockery --name=EventPublisher --dir=. --output=./mocks --filename=event_publisher_mock.go --case=underscore --with-expecter
type EventPublisher interface {
	Publish(ctx context.Context, channel Channel, ev event.Event) error
}

type EventListener interface {
	// Listen blocks until ctx is done.
	Listen(ctx context.Context, channels ...Channel)
	Register(eventType reflect.Type, subscriber interface{})
}

// EventSubscriber handles one concrete event type. A returned error is logged
// by the listener and does not stop delivery to other subscribers.
type EventSubscriber[T event.Event] interface {
	OnEvent(ctx context.Context, ev T) error
}

func RegisterEventSubscriber[T event.Event](listener EventListener, subscriber EventSubscriber[T]) {
	var evt T
	listener.Register(reflect.TypeOf(evt), subscriber)
}
