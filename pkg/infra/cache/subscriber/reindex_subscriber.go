package subscriber

import (
	"context"

	"github.com/folioworks/folio/pkg/app/search"
	infraCache "github.com/folioworks/folio/pkg/infra/cache"
	"github.com/folioworks/folio/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type ReindexSubscriber struct {
	logger *logrus.Logger
	search search.Service
}

func NewReindexSubscriber(
	logger *logrus.Logger,
	search search.Service,
) infraCache.EventSubscriber[event.ReindexRequestedEvent] {
	return &ReindexSubscriber{
		logger: logger,
		search: search,
	}
}

func (s ReindexSubscriber) OnEvent(ctx context.Context, evt event.ReindexRequestedEvent) error {
	s.logger.WithField("reason", evt.Reason).Debug("rebuilding search index")
	if _, err := s.search.Rebuild(ctx); err != nil {
		return err
	}
	return nil
}
