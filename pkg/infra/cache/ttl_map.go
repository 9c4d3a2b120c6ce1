package cache

import (
	"sync"
	"time"
)

type ttlEntry struct {
	value     interface{}
	expiresAt time.Time
}

// TTLMap is a thread-safe map whose entries expire after a fixed TTL.
type TTLMap struct {
	mu   sync.RWMutex
	data map[string]ttlEntry
	ttl  time.Duration
	now  func() time.Time
}

func NewTTLMap(ttl time.Duration) *TTLMap {
	return &TTLMap{
		data: make(map[string]ttlEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (m *TTLMap) WithClock(now func() time.Time) *TTLMap {
	m.now = now
	return m
}

func (m *TTLMap) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		if current, ok := m.data[key]; ok && m.now().After(current.expiresAt) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (m *TTLMap) Set(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = ttlEntry{value: value, expiresAt: m.now().Add(m.ttl)}
}

func (m *TTLMap) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

func (m *TTLMap) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]ttlEntry)
}

func (m *TTLMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Purge drops expired entries and returns how many were removed.
func (m *TTLMap) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for k, e := range m.data {
		if now.After(e.expiresAt) {
			delete(m.data, k)
			removed++
		}
	}
	return removed
}
