package webhook

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/folioworks/folio/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 1024
)

//go:generate mockery --name=Dispatcher --dir=. --output=./mocks --filename=dispatcher_mock.go --case=underscore --with-expecter
type Dispatcher interface {
	// Trigger enqueues one job per active subscriber of kind and returns
	// without waiting for any delivery. It never fails the caller.
	Trigger(ctx context.Context, kind webhook.EventKind, data interface{})
	Start(ctx context.Context)
	// Shutdown stops accepting jobs and waits for queued ones to finish or
	// for ctx to expire.
	Shutdown(ctx context.Context) error
}

type DispatcherOpts struct {
	Workers      int
	QueueSize    int
	TimeProvider func() time.Time
}

type dispatcher struct {
	logger       *logrus.Logger
	repo         webhook.Repository
	deliverer    Deliverer
	workers      int
	jobs         chan Job
	mu           sync.RWMutex
	closed       atomic.Bool
	started      atomic.Bool
	wg           sync.WaitGroup
	cancel       context.CancelFunc
	timeProvider func() time.Time
}

func NewDispatcher(
	logger *logrus.Logger,
	repo webhook.Repository,
	deliverer Deliverer,
	opts *DispatcherOpts,
) Dispatcher {
	d := &dispatcher{
		logger:       logger,
		repo:         repo,
		deliverer:    deliverer,
		workers:      DefaultWorkers,
		timeProvider: time.Now,
	}
	queueSize := DefaultQueueSize
	if opts != nil {
		if opts.Workers > 0 {
			d.workers = opts.Workers
		}
		if opts.QueueSize > 0 {
			queueSize = opts.QueueSize
		}
		if opts.TimeProvider != nil {
			d.timeProvider = opts.TimeProvider
		}
	}
	d.jobs = make(chan Job, queueSize)
	return d
}

func (d *dispatcher) Trigger(ctx context.Context, kind webhook.EventKind, data interface{}) {
	if !kind.Known() {
		d.logger.WithField("event", string(kind)).Warn("ignoring trigger for unknown event kind")
		return
	}
	if d.closed.Load() {
		d.logger.WithField("event", string(kind)).Warn("dispatcher closed, dropping trigger")
		return
	}

	// One encoding shared by every job; later changes to data are not seen.
	raw, err := json.Marshal(data)
	if err != nil {
		d.logger.WithError(err).WithField("event", string(kind)).Error("failed to encode webhook data, dropping trigger")
		return
	}

	hooks, err := d.repo.ListActiveByEvent(ctx, kind)
	if err != nil {
		d.logger.WithError(err).WithField("event", string(kind)).Error("failed to list webhooks for event")
		return
	}
	if len(hooks) == 0 {
		return
	}

	now := d.timeProvider().UTC()
	for _, wh := range hooks {
		d.enqueue(Job{
			WebhookID:  wh.ID,
			Event:      kind,
			Data:       json.RawMessage(raw),
			EnqueuedAt: now,
		})
	}
}

func (d *dispatcher) enqueue(job Job) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed.Load() {
		return
	}
	select {
	case d.jobs <- job:
		prometheus.WebhookQueue.WithLabelValues("enqueued").Inc()
	default:
		prometheus.WebhookQueue.WithLabelValues("dropped").Inc()
		d.logger.WithFields(logrus.Fields{
			"webhook_id": job.WebhookID.String(),
			"event":      string(job.Event),
		}).Warn("webhook queue is full, dropping delivery")
	}
}

// Start launches the workers. Deliveries keep the values of ctx but not its
// cancellation, so jobs still queued at shutdown are delivered and logged.
// Shutdown aborts them only when its own deadline passes.
func (d *dispatcher) Start(ctx context.Context) {
	if !d.started.CompareAndSwap(false, true) {
		return
	}
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()
	d.logger.WithField("workers", d.workers).Info("starting webhook workers")
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for job := range d.jobs {
				d.deliverer.Deliver(ctx, job)
			}
		}()
	}
}

func (d *dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed.Swap(true) {
		d.mu.Unlock()
		return nil
	}
	close(d.jobs)
	cancel := d.cancel
	d.mu.Unlock()
	if cancel == nil {
		cancel = func() {}
	}

	d.logger.Info("shutting down webhook workers")
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		cancel()
		d.logger.Info("webhook workers stopped")
		return nil
	case <-ctx.Done():
		cancel()
		d.logger.WithError(ctx.Err()).Warn("webhook shutdown deadline passed, aborting in-flight deliveries")
		return ctx.Err()
	}
}
