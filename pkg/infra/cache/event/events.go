package event

import "reflect"

type Event interface {
	Type() string
}

var (
	ContentChangedEventType   = "ContentChangedEvent"
	ReindexRequestedEventType = "ReindexRequestedEvent"
)

var Registry = map[string]reflect.Type{
	ContentChangedEventType:   reflect.TypeOf(ContentChangedEvent{}),
	ReindexRequestedEventType: reflect.TypeOf(ReindexRequestedEvent{}),
}
