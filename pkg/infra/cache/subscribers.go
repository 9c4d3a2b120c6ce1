package cache

import (
	"context"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
)

// subscriberSet fans one decoded event out to every subscriber registered
// for its concrete type.
type subscriberSet struct {
	mu     sync.RWMutex
	byType map[reflect.Type][]interface{}
}

func newSubscriberSet() *subscriberSet {
	return &subscriberSet{byType: make(map[reflect.Type][]interface{})}
}

func (s *subscriberSet) add(eventType reflect.Type, subscriber interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byType[eventType] = append(s.byType[eventType], subscriber)
}

func (s *subscriberSet) notify(ctx context.Context, logger *logrus.Logger, concreteEvent interface{}) {
	eventValue := reflect.ValueOf(concreteEvent)

	s.mu.RLock()
	subs := append([]interface{}(nil), s.byType[eventValue.Type()]...)
	s.mu.RUnlock()

	for _, sub := range subs {
		method := reflect.ValueOf(sub).MethodByName("OnEvent")
		if !method.IsValid() {
			logger.Debug("subscriber does not implement OnEvent")
			continue
		}
		if !eventValue.Type().AssignableTo(method.Type().In(1)) {
			continue
		}
		results := method.Call([]reflect.Value{reflect.ValueOf(ctx), eventValue})
		if len(results) > 0 && !results[0].IsNil() {
			if err, ok := results[0].Interface().(error); ok {
				logger.WithError(err).WithField("event_type", eventValue.Type().Name()).Error("event subscriber failed")
			}
		}
	}
}
