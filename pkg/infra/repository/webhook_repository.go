package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WebhookRepository struct {
	db *gorm.DB
}

func NewWebhookRepository(db *gorm.DB) webhook.Repository {
	return &WebhookRepository{
		db: db,
	}
}

func (r *WebhookRepository) Create(ctx context.Context, wh *webhook.Webhook) error {
	if err := r.db.WithContext(ctx).Create(wh).Error; err != nil {
		return fmt.Errorf("failed to create webhook: %w", err)
	}
	return nil
}

func (r *WebhookRepository) GetByID(ctx context.Context, id uuid.UUID) (*webhook.Webhook, error) {
	entity := new(webhook.Webhook)
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, webhook.ErrWebhookNotFound
		}
		return nil, fmt.Errorf("failed to get webhook: %w", err)
	}
	return entity, nil
}

func (r *WebhookRepository) ListByOwner(ctx context.Context, ownerID string) ([]webhook.Webhook, error) {
	var hooks []webhook.Webhook
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&hooks).Error; err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	return hooks, nil
}

// ListActiveByEvent narrows on the serialized event list in SQL and then
// checks membership exactly, since the column is plain JSON text.
func (r *WebhookRepository) ListActiveByEvent(ctx context.Context, kind webhook.EventKind) ([]webhook.Webhook, error) {
	var candidates []webhook.Webhook
	if err := r.db.WithContext(ctx).
		Where("active = ? AND events LIKE ?", true, "%\""+string(kind)+"\"%").
		Order("created_at ASC").
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list webhooks for %s: %w", kind, err)
	}
	hooks := candidates[:0]
	for _, wh := range candidates {
		if wh.Subscribes(kind) {
			hooks = append(hooks, wh)
		}
	}
	return hooks, nil
}

func (r *WebhookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&webhook.Webhook{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete webhook: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return webhook.ErrWebhookNotFound
	}
	return nil
}

func (r *WebhookRepository) RecordSuccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&webhook.Webhook{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"failure_count":     0,
			"last_triggered_at": at,
			"updated_at":        at,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to record webhook success: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return webhook.ErrWebhookNotFound
	}
	return nil
}

// RecordFailure increments in a single statement so concurrent failures
// never lose a count, then reads the row back.
func (r *WebhookRepository) RecordFailure(ctx context.Context, id uuid.UUID, threshold int) (*webhook.Webhook, error) {
	var updated webhook.Webhook
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&webhook.Webhook{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"failure_count": gorm.Expr("failure_count + 1"),
				"active":        gorm.Expr("CASE WHEN failure_count + 1 >= ? THEN ? ELSE active END", threshold, false),
				"updated_at":    time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return webhook.ErrWebhookNotFound
		}
		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		if errors.Is(err, webhook.ErrWebhookNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record webhook failure: %w", err)
	}
	return &updated, nil
}
