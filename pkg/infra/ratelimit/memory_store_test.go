package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/folioworks/folio/pkg/domain/ratelimit"
	infraRateLimit "github.com/folioworks/folio/pkg/infra/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetPut(t *testing.T) {
	ctx := context.Background()
	store := infraRateLimit.NewMemoryStore()

	record, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, record)

	now := time.Unix(1740730536, 0)
	in := &ratelimit.Record{Key: "ip:scope", Window: time.Minute, Timestamps: []time.Time{now}}
	require.NoError(t, store.Put(ctx, in))

	in.Timestamps[0] = now.Add(time.Hour)

	out, err := store.Get(ctx, "ip:scope")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, []time.Time{now}, out.Timestamps)
}

func TestMemoryStore_Purge(t *testing.T) {
	ctx := context.Background()
	store := infraRateLimit.NewMemoryStore()
	now := time.Unix(1740730536, 0)

	require.NoError(t, store.Put(ctx, &ratelimit.Record{
		Key: "stale", Window: time.Minute, Timestamps: []time.Time{now.Add(-2 * time.Minute)},
	}))
	require.NoError(t, store.Put(ctx, &ratelimit.Record{
		Key: "fresh", Window: time.Minute, Timestamps: []time.Time{now.Add(-10 * time.Second)},
	}))

	removed, err := store.Purge(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	stale, _ := store.Get(ctx, "stale")
	assert.Nil(t, stale)
	fresh, _ := store.Get(ctx, "fresh")
	assert.NotNil(t, fresh)
}
