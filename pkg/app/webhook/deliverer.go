package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/folioworks/folio/pkg/infra/httpx"
	"github.com/folioworks/folio/pkg/infra/prometheus"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDeliveryTimeout = 10 * time.Second
	UserAgent              = "folio-webhooks/1.0"
	responseSnippetSize    = 512
	timestampLayout        = "2006-01-02T15:04:05.000Z07:00"
)

// Job is a single queued delivery of one event to one webhook. Data is the
// event data already encoded as JSON.
type Job struct {
	WebhookID  uuid.UUID
	Event      webhook.EventKind
	Data       json.RawMessage
	EnqueuedAt time.Time
}

type Deliverer interface {
	// Deliver makes exactly one attempt and returns the logged entry, or nil
	// when no attempt was made.
	Deliver(ctx context.Context, job Job) *webhook.Delivery
}

type DelivererOpts struct {
	Timeout      time.Duration
	TimeProvider func() time.Time
	UuidProvider func() uuid.UUID
}

type deliverer struct {
	logger       *logrus.Logger
	repo         webhook.Repository
	deliveries   webhook.DeliveryRepository
	client       httpx.Client
	timeout      time.Duration
	timeProvider func() time.Time
	uuidProvider func() uuid.UUID
}

func NewDeliverer(
	logger *logrus.Logger,
	repo webhook.Repository,
	deliveries webhook.DeliveryRepository,
	client httpx.Client,
	opts *DelivererOpts,
) Deliverer {
	d := &deliverer{
		logger:       logger,
		repo:         repo,
		deliveries:   deliveries,
		client:       client,
		timeout:      DefaultDeliveryTimeout,
		timeProvider: time.Now,
		uuidProvider: uuid.New,
	}
	if opts != nil {
		if opts.Timeout > 0 {
			d.timeout = opts.Timeout
		}
		if opts.TimeProvider != nil {
			d.timeProvider = opts.TimeProvider
		}
		if opts.UuidProvider != nil {
			d.uuidProvider = opts.UuidProvider
		}
	}
	return d
}

func (d *deliverer) Deliver(ctx context.Context, job Job) *webhook.Delivery {
	log := d.logger.WithFields(logrus.Fields{
		"webhook_id": job.WebhookID.String(),
		"event":      string(job.Event),
	})

	wh, err := d.repo.GetByID(ctx, job.WebhookID)
	if err != nil {
		if errors.Is(err, webhook.ErrWebhookNotFound) {
			log.Debug("webhook removed before delivery, skipping")
		} else {
			log.WithError(err).Error("failed to load webhook for delivery")
		}
		return nil
	}
	if !wh.Active {
		log.Debug("webhook inactive, skipping delivery")
		return nil
	}

	now := d.timeProvider().UTC()
	payload, unsigned, err := canonicalPayload(webhook.Payload{
		Event:     job.Event,
		Timestamp: now.Format(timestampLayout),
		Data:      job.Data,
	})
	if err != nil {
		log.WithError(err).Error("failed to encode webhook payload")
		return nil
	}
	payload.Signature = Sign(unsigned, wh.Secret)
	body, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("failed to encode signed webhook payload")
		return nil
	}

	start := d.timeProvider()
	status, sendErr := d.send(ctx, wh, payload, body)
	elapsed := d.timeProvider().Sub(start)

	entry := &webhook.Delivery{
		ID:         d.uuidProvider(),
		WebhookID:  wh.ID,
		Event:      job.Event,
		StatusCode: status,
		Success:    sendErr == nil,
		DurationMs: elapsed.Milliseconds(),
		CreatedAt:  now,
	}
	if sendErr != nil {
		entry.Error = sendErr.Error()
	}

	prometheus.WebhookDeliveryLatency.WithLabelValues(string(job.Event)).Observe(float64(elapsed.Milliseconds()))

	if entry.Success {
		prometheus.WebhookDeliveries.WithLabelValues(string(job.Event), "success").Inc()
		if err := d.repo.RecordSuccess(ctx, wh.ID, now); err != nil {
			log.WithError(err).Error("failed to record webhook success")
		}
		log.WithField("status", status).Debug("webhook delivered")
	} else {
		prometheus.WebhookDeliveries.WithLabelValues(string(job.Event), "failure").Inc()
		updated, err := d.repo.RecordFailure(ctx, wh.ID, webhook.FailureThreshold)
		if err != nil {
			log.WithError(err).Error("failed to record webhook failure")
		} else if updated != nil && !updated.Active {
			prometheus.WebhooksDeactivated.Inc()
			log.WithField("failure_count", updated.FailureCount).Warn("webhook deactivated after repeated failures")
		}
		log.WithError(sendErr).WithField("status", status).Warn("webhook delivery failed")
	}

	if err := d.deliveries.Append(ctx, entry); err != nil {
		log.WithError(err).Error("failed to append webhook delivery log")
	}
	return entry
}

func (d *deliverer) send(ctx context.Context, wh *webhook.Webhook, payload webhook.Payload, body []byte) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(webhook.SignatureHeader, payload.Signature)
	req.Header.Set(webhook.EventHeader, string(payload.Event))
	req.Header.Set(webhook.TimestampHeader, payload.Timestamp)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, responseSnippetSize))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return resp.StatusCode, nil
}
