package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appRateLimit "github.com/folioworks/folio/pkg/app/ratelimit"
	"github.com/folioworks/folio/pkg/domain/ratelimit"
	"github.com/folioworks/folio/pkg/domain/ratelimit/mocks"
	infraRateLimit "github.com/folioworks/folio/pkg/infra/ratelimit"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newLimiter(store ratelimit.Store, c *clock) appRateLimit.Limiter {
	return appRateLimit.NewLimiter(logrus.New(), store, &appRateLimit.LimiterOpts{TimeProvider: c.Now})
}

func TestLimiter_FirstCallAllowed(t *testing.T) {
	c := &clock{now: time.Unix(1740730536, 0)}
	l := newLimiter(infraRateLimit.NewMemoryStore(), c)

	res := l.CheckLimit(context.Background(), "1.2.3.4:/api/search", ratelimit.Config{Window: time.Minute, MaxRequests: 3})

	assert.True(t, res.Allowed)
	assert.Equal(t, 3, res.Limit)
	assert.Equal(t, 2, res.Remaining)
	assert.Equal(t, c.now.Add(time.Minute), res.ResetAt)
}

func TestLimiter_DeniesAfterMaxAndRecovers(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Unix(1740730536, 0)}
	l := newLimiter(infraRateLimit.NewMemoryStore(), c)
	cfg := ratelimit.Config{Window: time.Minute, MaxRequests: 3}
	start := c.now

	for i := 0; i < 3; i++ {
		res := l.CheckLimit(ctx, "k", cfg)
		require.True(t, res.Allowed, "call %d", i+1)
		assert.Equal(t, 2-i, res.Remaining)
		c.Advance(10 * time.Second)
	}

	for i := 0; i < 3; i++ {
		res := l.CheckLimit(ctx, "k", cfg)
		assert.False(t, res.Allowed)
		assert.Equal(t, 0, res.Remaining)
		assert.Equal(t, start.Add(time.Minute), res.ResetAt)
	}

	c.now = start.Add(time.Minute + time.Millisecond)
	res := l.CheckLimit(ctx, "k", cfg)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, start.Add(10*time.Second).Add(time.Minute), res.ResetAt)
}

func TestLimiter_DeniedCallsAreNotRecorded(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Unix(1740730536, 0)}
	l := newLimiter(infraRateLimit.NewMemoryStore(), c)
	cfg := ratelimit.Config{Window: time.Minute, MaxRequests: 1}
	start := c.now

	require.True(t, l.CheckLimit(ctx, "k", cfg).Allowed)
	for i := 0; i < 5; i++ {
		c.Advance(5 * time.Second)
		require.False(t, l.CheckLimit(ctx, "k", cfg).Allowed)
	}

	c.now = start.Add(time.Minute + time.Second)
	assert.True(t, l.CheckLimit(ctx, "k", cfg).Allowed)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Unix(1740730536, 0)}
	l := newLimiter(infraRateLimit.NewMemoryStore(), c)
	cfg := ratelimit.Config{Window: time.Minute, MaxRequests: 1}

	assert.True(t, l.CheckLimit(ctx, "a", cfg).Allowed)
	assert.False(t, l.CheckLimit(ctx, "a", cfg).Allowed)
	assert.True(t, l.CheckLimit(ctx, "b", cfg).Allowed)
}

func TestLimiter_MalformedConfigUsesDefault(t *testing.T) {
	c := &clock{now: time.Unix(1740730536, 0)}
	l := newLimiter(infraRateLimit.NewMemoryStore(), c)

	res := l.CheckLimit(context.Background(), "k", ratelimit.Config{Window: -time.Second, MaxRequests: 0})

	assert.True(t, res.Allowed)
	assert.Equal(t, ratelimit.DefaultMaxRequests, res.Limit)
	assert.Equal(t, ratelimit.DefaultMaxRequests-1, res.Remaining)
	assert.Equal(t, c.now.Add(ratelimit.DefaultWindow), res.ResetAt)
}

func TestLimiter_StoreFailureFailsOpen(t *testing.T) {
	store := mocks.NewStore(t)
	c := &clock{now: time.Unix(1740730536, 0)}
	l := newLimiter(store, c)

	store.EXPECT().Get(mock.Anything, "k").Return(nil, errors.New("redis down"))

	res := l.CheckLimit(context.Background(), "k", ratelimit.Config{Window: time.Minute, MaxRequests: 5})
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
}

func TestLimiter_EmptyKeyIsAnonymous(t *testing.T) {
	store := mocks.NewStore(t)
	c := &clock{now: time.Unix(1740730536, 0)}
	l := newLimiter(store, c)

	store.EXPECT().Get(mock.Anything, "anonymous").Return(nil, nil)
	store.EXPECT().Put(mock.Anything, mock.MatchedBy(func(r *ratelimit.Record) bool {
		return r.Key == "anonymous" && r.Window == time.Minute && len(r.Timestamps) == 1
	})).Return(nil)

	res := l.CheckLimit(context.Background(), "", ratelimit.Config{Window: time.Minute, MaxRequests: 5})
	assert.True(t, res.Allowed)
}

func TestLimiter_StartCleanupStopsOnCancel(t *testing.T) {
	store := mocks.NewStore(t)
	c := &clock{now: time.Unix(1740730536, 0)}
	l := newLimiter(store, c)

	store.On("Purge", mock.Anything, mock.Anything).Return(2, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.StartCleanup(ctx, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
