package response

import (
	"time"

	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/google/uuid"
)

type WebhookResponse struct {
	ID              uuid.UUID           `json:"id"`
	URL             string              `json:"url"`
	Events          []webhook.EventKind `json:"events"`
	Active          bool                `json:"active"`
	FailureCount    int                 `json:"failure_count"`
	LastTriggeredAt *time.Time          `json:"last_triggered_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// CreatedWebhookResponse is the only response that carries the secret.
type CreatedWebhookResponse struct {
	WebhookResponse
	Secret string `json:"secret"`
}

type ListWebhooksResponse struct {
	Webhooks []WebhookResponse `json:"webhooks"`
}

type ListDeliveriesResponse struct {
	Deliveries []webhook.Delivery `json:"deliveries"`
}

func NewWebhookResponse(wh *webhook.Webhook) WebhookResponse {
	return WebhookResponse{
		ID:              wh.ID,
		URL:             wh.URL,
		Events:          wh.Events,
		Active:          wh.Active,
		FailureCount:    wh.FailureCount,
		LastTriggeredAt: wh.LastTriggeredAt,
		CreatedAt:       wh.CreatedAt,
	}
}

func NewCreatedWebhookResponse(wh *webhook.Webhook) CreatedWebhookResponse {
	return CreatedWebhookResponse{
		WebhookResponse: NewWebhookResponse(wh),
		Secret:          wh.Secret,
	}
}

func NewListWebhooksResponse(hooks []webhook.Webhook) ListWebhooksResponse {
	out := ListWebhooksResponse{Webhooks: make([]WebhookResponse, 0, len(hooks))}
	for i := range hooks {
		out.Webhooks = append(out.Webhooks, NewWebhookResponse(&hooks[i]))
	}
	return out
}
