package subscriber_test

import (
	"context"
	"errors"
	"testing"

	searchMocks "github.com/folioworks/folio/pkg/app/search/mocks"
	webhookMocks "github.com/folioworks/folio/pkg/app/webhook/mocks"
	"github.com/folioworks/folio/pkg/domain/content"
	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/folioworks/folio/pkg/infra/cache/event"
	"github.com/folioworks/folio/pkg/infra/cache/subscriber"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReindexSubscriber(t *testing.T) {
	svc := searchMocks.NewService(t)
	svc.EXPECT().Rebuild(mock.Anything).Return(4, nil).Once()
	svc.EXPECT().Rebuild(mock.Anything).Return(0, errors.New("disk gone")).Once()

	sub := subscriber.NewReindexSubscriber(logrus.New(), svc)
	require.NoError(t, sub.OnEvent(context.Background(), event.ReindexRequestedEvent{Reason: "test"}))
	assert.ErrorContains(t, sub.OnEvent(context.Background(), event.ReindexRequestedEvent{Reason: "test"}), "disk gone")
}

func TestWebhookSubscriber_TriggersContentEvent(t *testing.T) {
	dispatcher := webhookMocks.NewDispatcher(t)
	var payload map[string]interface{}
	dispatcher.EXPECT().Trigger(mock.Anything, webhook.EventProjectUpdated, mock.Anything).
		Run(func(args mock.Arguments) { payload = args.Get(2).(map[string]interface{}) }).
		Once()

	sub := subscriber.NewWebhookSubscriber(logrus.New(), dispatcher)
	err := sub.OnEvent(context.Background(), event.NewContentChangedEvent(content.Change{
		Action: content.ActionUpdated,
		Item:   content.Item{ID: "project:lathe", Type: content.TypeProject, Title: "Lathe", URL: "/projects/lathe"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "project:lathe", payload["id"])
	assert.Equal(t, "/projects/lathe", payload["url"])
	assert.NotEmpty(t, payload["changed_at"])
}

func TestWebhookSubscriber_IgnoresUnknownKinds(t *testing.T) {
	dispatcher := webhookMocks.NewDispatcher(t)

	sub := subscriber.NewWebhookSubscriber(logrus.New(), dispatcher)
	err := sub.OnEvent(context.Background(), event.ContentChangedEvent{ItemType: "podcast", Action: content.ActionCreated})
	assert.NoError(t, err)
	dispatcher.AssertNotCalled(t, "Trigger", mock.Anything, mock.Anything, mock.Anything)
}
