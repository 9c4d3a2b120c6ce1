package subscriber

import (
	"context"
	"time"

	appWebhook "github.com/folioworks/folio/pkg/app/webhook"
	"github.com/folioworks/folio/pkg/domain/webhook"
	infraCache "github.com/folioworks/folio/pkg/infra/cache"
	"github.com/folioworks/folio/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

// WebhookSubscriber turns content changes into webhook triggers.
type WebhookSubscriber struct {
	logger     *logrus.Logger
	dispatcher appWebhook.Dispatcher
}

func NewWebhookSubscriber(
	logger *logrus.Logger,
	dispatcher appWebhook.Dispatcher,
) infraCache.EventSubscriber[event.ContentChangedEvent] {
	return &WebhookSubscriber{
		logger:     logger,
		dispatcher: dispatcher,
	}
}

func (s WebhookSubscriber) OnEvent(ctx context.Context, evt event.ContentChangedEvent) error {
	kind, err := webhook.ContentEvent(string(evt.ItemType), string(evt.Action))
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"item_type": evt.ItemType,
			"action":    evt.Action,
		}).Warn("no webhook event for content change")
		return nil
	}
	s.dispatcher.Trigger(ctx, kind, map[string]interface{}{
		"id":         evt.ItemID,
		"type":       evt.ItemType,
		"title":      evt.Title,
		"url":        evt.URL,
		"changed_at": time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}
