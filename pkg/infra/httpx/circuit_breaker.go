package httpx

import (
	"errors"
	"fmt"
	"time"

	"github.com/folioworks/folio/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker stops calling a failing upstream for a cool-down period.
// Only one probe call is let through while half-open.
type CircuitBreaker interface {
	Execute(fn func() error) error
	State() string
}

type BreakerOption func(*breakerOptions)

type breakerOptions struct {
	logger *logrus.Logger
}

// WithBreakerLogger logs every state transition.
func WithBreakerLogger(logger *logrus.Logger) BreakerOption {
	return func(o *breakerOptions) {
		o.logger = logger
	}
}

type circuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

// NewCircuitBreaker opens after maxFailures consecutive failures and stays
// open for timeout. A maxFailures of 0 is treated as 1.
func NewCircuitBreaker(name string, timeout time.Duration, maxFailures uint32, opts ...BreakerOption) CircuitBreaker {
	o := &breakerOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if maxFailures == 0 {
		maxFailures = 1
	}
	prometheus.BreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	return &circuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				prometheus.BreakerState.WithLabelValues(name).Set(float64(to))
				if o.logger != nil {
					o.logger.WithFields(logrus.Fields{
						"breaker": name,
						"from":    from.String(),
						"to":      to.String(),
					}).Warn("circuit breaker state changed")
				}
			},
		}),
	}
}

func (b *circuitBreaker) Execute(fn func() error) error {
	_, err := b.breaker.Execute(func() (result interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic recovered: %v", r)
			}
		}()
		return nil, fn()
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%s: %w", b.breaker.Name(), ErrCircuitOpen)
	default:
		return fmt.Errorf("%s: %w", b.breaker.Name(), err)
	}
}

func (b *circuitBreaker) State() string {
	return b.breaker.State().String()
}
