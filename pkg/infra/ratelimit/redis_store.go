package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/folioworks/folio/pkg/domain/ratelimit"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "ratelimit:"

type RedisStoreOpts struct {
	UuidProvider func() uuid.UUID
}

// redisStore keeps one sorted set per key, scored by unix milliseconds.
// Keys expire with their window so Purge has nothing to do.
type redisStore struct {
	redis        *redis.Client
	uuidProvider func() uuid.UUID
}

func NewRedisStore(redisClient *redis.Client, opts *RedisStoreOpts) ratelimit.Store {
	uuidProvider := uuid.New
	if opts != nil && opts.UuidProvider != nil {
		uuidProvider = opts.UuidProvider
	}
	return &redisStore{
		redis:        redisClient,
		uuidProvider: uuidProvider,
	}
}

func (s *redisStore) Get(ctx context.Context, key string) (*ratelimit.Record, error) {
	entries, err := s.redis.ZRangeWithScores(ctx, keyPrefix+key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read rate limit record %s: %w", key, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	record := &ratelimit.Record{
		Key:        key,
		Timestamps: make([]time.Time, 0, len(entries)),
	}
	for _, entry := range entries {
		record.Timestamps = append(record.Timestamps, time.UnixMilli(int64(entry.Score)))
	}
	return record, nil
}

func (s *redisStore) Put(ctx context.Context, record *ratelimit.Record) error {
	redisKey := keyPrefix + record.Key
	pipe := s.redis.TxPipeline()

	pipe.Del(ctx, redisKey)
	if len(record.Timestamps) > 0 {
		members := make([]*redis.Z, 0, len(record.Timestamps))
		for _, ts := range record.Timestamps {
			members = append(members, &redis.Z{
				Score:  float64(ts.UnixMilli()),
				Member: fmt.Sprintf("%d:%s", ts.UnixMilli(), s.uuidProvider().String()),
			})
		}
		pipe.ZAdd(ctx, redisKey, members...)
		pipe.PExpire(ctx, redisKey, record.Window)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}
	return nil
}

func (s *redisStore) Purge(context.Context, time.Time) (int, error) {
	return 0, nil
}
