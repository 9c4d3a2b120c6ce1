package ratelimit

import (
	"context"
	"time"

	"github.com/folioworks/folio/pkg/domain/ratelimit"
	"github.com/sirupsen/logrus"
)

const anonymousKey = "anonymous"

//go:generate mockery --name=Limiter --dir=. --output=./mocks --filename=limiter_mock.go --case=underscore --with-expecter
type Limiter interface {
	CheckLimit(ctx context.Context, key string, cfg ratelimit.Config) ratelimit.Result
	StartCleanup(ctx context.Context, interval time.Duration)
}

type LimiterOpts struct {
	TimeProvider func() time.Time
}

type limiter struct {
	logger       *logrus.Logger
	store        ratelimit.Store
	timeProvider func() time.Time
}

func NewLimiter(logger *logrus.Logger, store ratelimit.Store, opts *LimiterOpts) Limiter {
	timeProvider := time.Now
	if opts != nil && opts.TimeProvider != nil {
		timeProvider = opts.TimeProvider
	}
	return &limiter{
		logger:       logger,
		store:        store,
		timeProvider: timeProvider,
	}
}

// CheckLimit counts the requests of key inside the sliding window and
// records the current one only when it is allowed. Store failures are
// logged and the request is let through.
func (l *limiter) CheckLimit(ctx context.Context, key string, cfg ratelimit.Config) ratelimit.Result {
	if !cfg.Valid() {
		cfg = ratelimit.DefaultConfig()
	}
	if key == "" {
		key = anonymousKey
	}
	now := l.timeProvider()

	record, err := l.store.Get(ctx, key)
	if err != nil {
		l.logger.WithError(err).WithField("key", key).Warn("rate limit store unavailable, allowing request")
		return ratelimit.Result{
			Allowed:   true,
			Limit:     cfg.MaxRequests,
			Remaining: cfg.MaxRequests - 1,
			ResetAt:   now.Add(cfg.Window),
		}
	}
	if record == nil {
		record = &ratelimit.Record{Key: key}
	}
	record.Window = cfg.Window
	record.Prune(now.Add(-cfg.Window))

	if len(record.Timestamps) >= cfg.MaxRequests {
		return ratelimit.Result{
			Allowed:   false,
			Limit:     cfg.MaxRequests,
			Remaining: 0,
			ResetAt:   record.Oldest().Add(cfg.Window),
		}
	}

	record.Timestamps = append(record.Timestamps, now)
	if err := l.store.Put(ctx, record); err != nil {
		l.logger.WithError(err).WithField("key", key).Warn("failed to record rate limit hit")
	}

	return ratelimit.Result{
		Allowed:   true,
		Limit:     cfg.MaxRequests,
		Remaining: cfg.MaxRequests - len(record.Timestamps),
		ResetAt:   record.Oldest().Add(cfg.Window),
	}
}

// StartCleanup purges expired records every interval until ctx is done.
func (l *limiter) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := l.store.Purge(ctx, l.timeProvider())
			if err != nil {
				l.logger.WithError(err).Warn("rate limit cleanup failed")
				continue
			}
			if removed > 0 {
				l.logger.WithField("removed", removed).Debug("purged expired rate limit records")
			}
		}
	}
}
