package httpx

import (
	"errors"
	"testing"
	"time"

	"github.com/folioworks/folio/pkg/infra/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewCircuitBreaker(t *testing.T) {
	breaker := NewCircuitBreaker("chat-provider", 30*time.Second, 0)

	cb, ok := breaker.(*circuitBreaker)
	assert.True(t, ok)
	assert.Equal(t, "chat-provider", cb.breaker.Name())
	assert.Equal(t, "closed", breaker.State())
}

func TestCircuitBreaker_Execute(t *testing.T) {
	breaker := NewCircuitBreaker("success-test", 30*time.Second, 3)

	assert.NoError(t, breaker.Execute(func() error { return nil }))

	testError := errors.New("upstream 500")
	err := breaker.Execute(func() error { return testError })
	assert.ErrorIs(t, err, testError)
	assert.Contains(t, err.Error(), "success-test")
}

func TestCircuitBreaker_RecoversPanics(t *testing.T) {
	breaker := NewCircuitBreaker("panic-test", 30*time.Second, 3)

	err := breaker.Execute(func() error {
		panic("boom")
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "panic recovered: boom")
}

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	breaker := NewCircuitBreaker("open-test", 50*time.Millisecond, 2)

	for i := 0; i < 2; i++ {
		assert.Error(t, breaker.Execute(func() error { return errors.New("failure") }))
	}

	called := false
	err := breaker.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
	assert.Equal(t, "open", breaker.State())
	assert.Equal(t, 2.0, testutil.ToFloat64(prometheus.BreakerState.WithLabelValues("open-test")))

	time.Sleep(80 * time.Millisecond)

	assert.NoError(t, breaker.Execute(func() error { return nil }))
	assert.Equal(t, "closed", breaker.State())
}
