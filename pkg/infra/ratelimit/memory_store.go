package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/folioworks/folio/pkg/domain/ratelimit"
)

// memoryStore keeps records in process memory. The mutex protects the map
// itself; a Get followed by a Put from two requests can still interleave.
type memoryStore struct {
	mu      sync.Mutex
	records map[string]*ratelimit.Record
}

func NewMemoryStore() ratelimit.Store {
	return &memoryStore{
		records: make(map[string]*ratelimit.Record),
	}
}

func (s *memoryStore) Get(_ context.Context, key string) (*ratelimit.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return cloneRecord(record), nil
}

func (s *memoryStore) Put(_ context.Context, record *ratelimit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Key] = cloneRecord(record)
	return nil
}

func (s *memoryStore) Purge(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, record := range s.records {
		if record.Expired(now) {
			delete(s.records, key)
			removed++
		}
	}
	return removed, nil
}

func cloneRecord(r *ratelimit.Record) *ratelimit.Record {
	out := &ratelimit.Record{
		Key:        r.Key,
		Window:     r.Window,
		Timestamps: make([]time.Time, len(r.Timestamps)),
	}
	copy(out.Timestamps, r.Timestamps)
	return out
}
