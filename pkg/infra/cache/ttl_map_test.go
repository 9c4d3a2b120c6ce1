package cache_test

import (
	"testing"
	"time"

	"github.com/folioworks/folio/pkg/infra/cache"
	"github.com/stretchr/testify/assert"
)

func TestTTLMap_Expiry(t *testing.T) {
	now := time.Unix(1740730536, 0)
	m := cache.NewTTLMap(time.Minute).WithClock(func() time.Time { return now })

	m.Set("a", 1)
	m.Set("b", 2)
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	assert.Equal(t, 1, m.Purge())
	assert.Equal(t, 0, m.Len())
}

func TestTTLMap_DeleteAndClear(t *testing.T) {
	m := cache.NewTTLMap(time.Minute)
	m.Set("a", 1)
	m.Set("b", 2)

	m.Delete("a")
	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Clear()
	assert.Equal(t, 0, m.Len())
}
