package webhook_test

import (
	"context"
	"sync"
	"time"

	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/google/uuid"
)

type memoryRepo struct {
	mu    sync.Mutex
	hooks map[uuid.UUID]*webhook.Webhook
}

func newMemoryRepo(hooks ...*webhook.Webhook) *memoryRepo {
	r := &memoryRepo{hooks: map[uuid.UUID]*webhook.Webhook{}}
	for _, h := range hooks {
		r.hooks[h.ID] = h
	}
	return r
}

func (r *memoryRepo) Create(_ context.Context, w *webhook.Webhook) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *w
	r.hooks[w.ID] = &c
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*webhook.Webhook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.hooks[id]
	if !ok {
		return nil, webhook.ErrWebhookNotFound
	}
	c := *w
	return &c, nil
}

func (r *memoryRepo) ListByOwner(_ context.Context, ownerID string) ([]webhook.Webhook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []webhook.Webhook
	for _, w := range r.hooks {
		if w.OwnerID == ownerID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListActiveByEvent(_ context.Context, kind webhook.EventKind) ([]webhook.Webhook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []webhook.Webhook
	for _, w := range r.hooks {
		if w.Active && w.Subscribes(kind) {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hooks[id]; !ok {
		return webhook.ErrWebhookNotFound
	}
	delete(r.hooks, id)
	return nil
}

func (r *memoryRepo) RecordSuccess(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.hooks[id]
	if !ok {
		return webhook.ErrWebhookNotFound
	}
	w.FailureCount = 0
	w.LastTriggeredAt = &at
	return nil
}

func (r *memoryRepo) RecordFailure(_ context.Context, id uuid.UUID, threshold int) (*webhook.Webhook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.hooks[id]
	if !ok {
		return nil, webhook.ErrWebhookNotFound
	}
	w.FailureCount++
	if w.FailureCount >= threshold {
		w.Active = false
	}
	c := *w
	return &c, nil
}

func (r *memoryRepo) get(id uuid.UUID) webhook.Webhook {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.hooks[id]
}

type memoryLog struct {
	mu      sync.Mutex
	entries []webhook.Delivery
}

func (l *memoryLog) Append(_ context.Context, d *webhook.Delivery) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, *d)
	return nil
}

func (l *memoryLog) ListByWebhook(_ context.Context, id uuid.UUID, limit int) ([]webhook.Delivery, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []webhook.Delivery
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if l.entries[i].WebhookID == id {
			out = append(out, l.entries[i])
		}
	}
	return out, nil
}

func (l *memoryLog) all() []webhook.Delivery {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]webhook.Delivery(nil), l.entries...)
}

func activeHook(url string, events ...webhook.EventKind) *webhook.Webhook {
	return &webhook.Webhook{
		ID:      uuid.New(),
		OwnerID: "owner-1",
		URL:     url,
		Events:  events,
		Secret:  "s3cret",
		Active:  true,
	}
}
