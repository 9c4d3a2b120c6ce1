package webhook

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, webhook *Webhook) error
	GetByID(ctx context.Context, id uuid.UUID) (*Webhook, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Webhook, error)
	ListActiveByEvent(ctx context.Context, kind EventKind) ([]Webhook, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// RecordSuccess clears the failure count and stamps the trigger time.
	RecordSuccess(ctx context.Context, id uuid.UUID, at time.Time) error
	// RecordFailure increments the failure count and deactivates the
	// webhook once it reaches threshold. It returns the updated webhook.
	RecordFailure(ctx context.Context, id uuid.UUID, threshold int) (*Webhook, error)
}

//go:generate mockery --name=DeliveryRepository --dir=. --output=./mocks --filename=delivery_repository_mock.go --case=underscore --with-expecter
type DeliveryRepository interface {
	Append(ctx context.Context, delivery *Delivery) error
	// ListByWebhook returns the newest entries first.
	ListByWebhook(ctx context.Context, webhookID uuid.UUID, limit int) ([]Delivery, error)
}
