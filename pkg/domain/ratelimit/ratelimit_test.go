package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Prune(t *testing.T) {
	base := time.Unix(1740730536, 0)
	r := &Record{
		Key:    "1.2.3.4:/api/search",
		Window: time.Minute,
		Timestamps: []time.Time{
			base,
			base.Add(10 * time.Second),
			base.Add(30 * time.Second),
		},
	}

	r.Prune(base.Add(10 * time.Second))

	assert.Equal(t, []time.Time{base.Add(30 * time.Second)}, r.Timestamps)
	assert.Equal(t, base.Add(30*time.Second), r.Oldest())
}

func TestRecord_Expired(t *testing.T) {
	base := time.Unix(1740730536, 0)
	r := &Record{Window: time.Minute, Timestamps: []time.Time{base}}

	assert.False(t, r.Expired(base.Add(59*time.Second)))
	assert.True(t, r.Expired(base.Add(time.Minute)))
	assert.True(t, (&Record{}).Expired(base))
}

func TestConfig_Valid(t *testing.T) {
	assert.True(t, DefaultConfig().Valid())
	assert.False(t, Config{Window: 0, MaxRequests: 10}.Valid())
	assert.False(t, Config{Window: time.Second, MaxRequests: -1}.Valid())
}

func TestResult_RetryAfter(t *testing.T) {
	now := time.Unix(100, 0)
	denied := Result{Allowed: false, ResetAt: now.Add(12 * time.Second)}
	assert.Equal(t, 12*time.Second, denied.RetryAfter(now))
	assert.Zero(t, Result{Allowed: true, ResetAt: now.Add(time.Second)}.RetryAfter(now))
}
