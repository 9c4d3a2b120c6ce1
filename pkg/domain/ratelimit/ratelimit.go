package ratelimit

import (
	"context"
	"time"
)

const (
	DefaultWindow      = time.Minute
	DefaultMaxRequests = 100
	DefaultScope       = "default"
)

// Config bounds a scope to MaxRequests per sliding Window.
type Config struct {
	Window      time.Duration `mapstructure:"window" json:"window"`
	MaxRequests int           `mapstructure:"max_requests" json:"max_requests"`
}

func DefaultConfig() Config {
	return Config{Window: DefaultWindow, MaxRequests: DefaultMaxRequests}
}

func (c Config) Valid() bool {
	return c.Window > 0 && c.MaxRequests > 0
}

// Result is the outcome of a single limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the time left until the oldest counted request leaves the window.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Record holds the request instants counted for a key, oldest first.
type Record struct {
	Key        string
	Window     time.Duration
	Timestamps []time.Time
}

// Prune drops every timestamp at or before cutoff.
func (r *Record) Prune(cutoff time.Time) {
	i := 0
	for i < len(r.Timestamps) && !r.Timestamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		r.Timestamps = append(r.Timestamps[:0], r.Timestamps[i:]...)
	}
}

// Oldest returns the first retained timestamp, or zero when empty.
func (r *Record) Oldest() time.Time {
	if len(r.Timestamps) == 0 {
		return time.Time{}
	}
	return r.Timestamps[0]
}

// Expired reports whether nothing in the record is still inside its window.
func (r *Record) Expired(now time.Time) bool {
	if len(r.Timestamps) == 0 {
		return true
	}
	return !r.Timestamps[len(r.Timestamps)-1].Add(r.Window).After(now)
}

//go:generate mockery --name=Store --dir=. --output=./mocks --filename=store_mock.go --case=underscore --with-expecter
type Store interface {
	// Get returns the record for key or nil when there is none.
	Get(ctx context.Context, key string) (*Record, error)
	Put(ctx context.Context, record *Record) error
	// Purge removes records with no timestamp left inside their window.
	Purge(ctx context.Context, now time.Time) (int, error)
}
