package repository

import (
	"context"
	"fmt"

	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) webhook.DeliveryRepository {
	return &DeliveryRepository{
		db: db,
	}
}

func (r *DeliveryRepository) Append(ctx context.Context, delivery *webhook.Delivery) error {
	if delivery.ID == uuid.Nil {
		delivery.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return fmt.Errorf("failed to append webhook delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepository) ListByWebhook(ctx context.Context, webhookID uuid.UUID, limit int) ([]webhook.Delivery, error) {
	var entries []webhook.Delivery
	q := r.db.WithContext(ctx).
		Where("webhook_id = ?", webhookID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list webhook deliveries: %w", err)
	}
	return entries, nil
}
