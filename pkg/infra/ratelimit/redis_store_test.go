package ratelimit_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/folioworks/folio/pkg/domain/ratelimit"
	infraRateLimit "github.com/folioworks/folio/pkg/infra/ratelimit"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Get(t *testing.T) {
	redisMock, mock := redismock.NewClientMock()
	store := infraRateLimit.NewRedisStore(redisMock, nil)
	fixedTime := time.UnixMilli(1740730536000)

	mock.ExpectZRangeWithScores("ratelimit:1.2.3.4:/api/search", 0, -1).SetVal([]redis.Z{
		{Score: float64(fixedTime.UnixMilli()), Member: "a"},
		{Score: float64(fixedTime.Add(time.Second).UnixMilli()), Member: "b"},
	})

	record, err := store.Get(context.Background(), "1.2.3.4:/api/search")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "1.2.3.4:/api/search", record.Key)
	assert.Equal(t, []time.Time{fixedTime, fixedTime.Add(time.Second)}, record.Timestamps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetEmpty(t *testing.T) {
	redisMock, mock := redismock.NewClientMock()
	store := infraRateLimit.NewRedisStore(redisMock, nil)

	mock.ExpectZRangeWithScores("ratelimit:nobody", 0, -1).SetVal([]redis.Z{})

	record, err := store.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestRedisStore_GetError(t *testing.T) {
	redisMock, mock := redismock.NewClientMock()
	store := infraRateLimit.NewRedisStore(redisMock, nil)

	mock.ExpectZRangeWithScores("ratelimit:k", 0, -1).SetErr(errors.New("connection refused"))

	_, err := store.Get(context.Background(), "k")
	assert.ErrorContains(t, err, "connection refused")
}

func TestRedisStore_Put(t *testing.T) {
	redisMock, mock := redismock.NewClientMock()
	uid := uuid.New()
	store := infraRateLimit.NewRedisStore(redisMock, &infraRateLimit.RedisStoreOpts{
		UuidProvider: func() uuid.UUID { return uid },
	})
	fixedTime := time.UnixMilli(1740730536000)
	key := "ratelimit:1.2.3.4:/api/chat"

	mock.ExpectTxPipeline()
	mock.ExpectDel(key).SetVal(1)
	mock.ExpectZAdd(key, &redis.Z{
		Score:  float64(fixedTime.UnixMilli()),
		Member: strconv.FormatInt(fixedTime.UnixMilli(), 10) + ":" + uid.String(),
	}).SetVal(1)
	mock.ExpectPExpire(key, time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	err := store.Put(context.Background(), &ratelimit.Record{
		Key:        "1.2.3.4:/api/chat",
		Window:     time.Minute,
		Timestamps: []time.Time{fixedTime},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_PurgeIsNoop(t *testing.T) {
	redisMock, _ := redismock.NewClientMock()
	store := infraRateLimit.NewRedisStore(redisMock, nil)

	removed, err := store.Purge(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, removed)
}
