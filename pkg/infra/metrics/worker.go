package metrics

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/folioworks/folio/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const DefaultQueueSize = 1000

// Sample is one finished HTTP request.
type Sample struct {
	Method  string
	Status  int
	Latency time.Duration
}

// Worker records request samples off the request path.
type Worker interface {
	StartWorkers(n int)
	Process(sample Sample)
	Shutdown()
}

type worker struct {
	logger   *logrus.Logger
	taskChan chan Sample
	closed   atomic.Bool
	mu       sync.RWMutex
	wg       sync.WaitGroup
}

func NewWorker(logger *logrus.Logger, queueSize int) Worker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &worker{
		logger:   logger,
		taskChan: make(chan Sample, queueSize),
	}
}

func (m *worker) StartWorkers(n int) {
	m.logger.WithField("workers", n).Debug("starting metrics workers")
	for i := 0; i < n; i++ {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			for s := range m.taskChan {
				m.record(s)
			}
		}()
	}
}

func (m *worker) Process(sample Sample) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed.Load() {
		return
	}
	select {
	case m.taskChan <- sample:
	default:
		m.logger.WithField("method", sample.Method).Warn("metrics queue is full, dropping sample")
	}
}

// Shutdown drains queued samples before returning.
func (m *worker) Shutdown() {
	m.mu.Lock()
	if m.closed.Swap(true) {
		m.mu.Unlock()
		return
	}
	close(m.taskChan)
	m.mu.Unlock()
	m.wg.Wait()
	m.logger.Info("metrics workers stopped")
}

func (m *worker) record(s Sample) {
	prometheus.RequestTotal.WithLabelValues(s.Method, statusClass(s.Status)).Inc()
	prometheus.RequestLatency.WithLabelValues(s.Method).Observe(float64(s.Latency.Milliseconds()))
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return strconv.Itoa(code/100) + "xx"
}
