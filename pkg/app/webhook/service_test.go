package webhook_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appWebhook "github.com/folioworks/folio/pkg/app/webhook"
	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/folioworks/folio/pkg/domain/webhook/mocks"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow  = time.Date(2025, 2, 28, 8, 15, 36, 0, time.UTC)
	fixedID   = uuid.MustParse("4f0a3f6e-7c3b-4a55-9d55-0f1b2e3c4d5e")
	fixedHash = "a3f1c2d4e5b6a7980112233445566778899aabbccddeeff00112233445566778"
)

func newService(repo webhook.Repository, deliveries webhook.DeliveryRepository) appWebhook.Service {
	return appWebhook.NewService(logrus.New(), repo, deliveries, &appWebhook.ServiceOpts{
		TimeProvider:   func() time.Time { return fixedNow },
		UuidProvider:   func() uuid.UUID { return fixedID },
		SecretProvider: func() (string, error) { return fixedHash, nil },
	})
}

func TestService_Register(t *testing.T) {
	repo := mocks.NewRepository(t)
	repo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(w *webhook.Webhook) bool {
		return w.ID == fixedID && w.OwnerID == "owner-1" && w.Active && w.Secret == fixedHash
	})).Return(nil).Once()

	svc := newService(repo, mocks.NewDeliveryRepository(t))
	wh, err := svc.Register(context.Background(), "owner-1", "https://hooks.example.com/in", []string{"blog.created", "blog.created", "contact.submitted"})

	require.NoError(t, err)
	assert.Equal(t, fixedHash, wh.Secret)
	assert.Equal(t, []webhook.EventKind{webhook.EventBlogCreated, webhook.EventContactSubmitted}, wh.Events)
	assert.Equal(t, 0, wh.FailureCount)
	assert.Equal(t, fixedNow, wh.CreatedAt)
}

func TestService_RegisterRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		events []string
		want   error
	}{
		{name: "not a url", url: "not-a-url", events: []string{"blog.created"}, want: webhook.ErrInvalidURL},
		{name: "ftp scheme", url: "ftp://example.com/x", events: []string{"blog.created"}, want: webhook.ErrInvalidURL},
		{name: "no events", url: "https://example.com", events: nil, want: webhook.ErrNoEvents},
		{name: "unknown event", url: "https://example.com", events: []string{"blog.exploded"}, want: webhook.ErrUnknownEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no Create expectation: nothing may be persisted
			repo := mocks.NewRepository(t)
			svc := newService(repo, mocks.NewDeliveryRepository(t))

			wh, err := svc.Register(context.Background(), "owner-1", tt.url, tt.events)
			assert.Nil(t, wh)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestService_ListHidesSecrets(t *testing.T) {
	repo := mocks.NewRepository(t)
	repo.EXPECT().ListByOwner(mock.Anything, "owner-1").Return([]webhook.Webhook{
		{ID: uuid.New(), OwnerID: "owner-1", Secret: "one"},
		{ID: uuid.New(), OwnerID: "owner-1", Secret: "two"},
	}, nil).Once()

	hooks, err := newService(repo, mocks.NewDeliveryRepository(t)).List(context.Background(), "owner-1")

	require.NoError(t, err)
	require.Len(t, hooks, 2)
	for _, h := range hooks {
		assert.Empty(t, h.Secret)
	}
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.EXPECT().GetByID(mock.Anything, fixedID).Return(&webhook.Webhook{ID: fixedID, OwnerID: "owner-1"}, nil).Once()
		repo.EXPECT().Delete(mock.Anything, fixedID).Return(nil).Once()

		assert.NoError(t, newService(repo, mocks.NewDeliveryRepository(t)).Delete(ctx, "owner-1", fixedID))
	})

	t.Run("other owner is unauthorized", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.EXPECT().GetByID(mock.Anything, fixedID).Return(&webhook.Webhook{ID: fixedID, OwnerID: "owner-1"}, nil).Once()

		err := newService(repo, mocks.NewDeliveryRepository(t)).Delete(ctx, "owner-2", fixedID)
		assert.ErrorIs(t, err, webhook.ErrUnauthorized)
	})

	t.Run("missing webhook", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.EXPECT().GetByID(mock.Anything, fixedID).Return(nil, webhook.ErrWebhookNotFound).Once()

		err := newService(repo, mocks.NewDeliveryRepository(t)).Delete(ctx, "owner-1", fixedID)
		assert.ErrorIs(t, err, webhook.ErrWebhookNotFound)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.EXPECT().GetByID(mock.Anything, fixedID).Return(nil, errors.New("connection reset")).Once()

		err := newService(repo, mocks.NewDeliveryRepository(t)).Delete(ctx, "owner-1", fixedID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, webhook.ErrWebhookNotFound)
	})
}

func TestService_DeliveriesClampsLimit(t *testing.T) {
	repo := mocks.NewRepository(t)
	repo.EXPECT().GetByID(mock.Anything, fixedID).Return(&webhook.Webhook{ID: fixedID, OwnerID: "owner-1"}, nil).Twice()
	deliveries := mocks.NewDeliveryRepository(t)
	deliveries.EXPECT().ListByWebhook(mock.Anything, fixedID, appWebhook.DefaultDeliveriesLimit).Return(nil, nil).Once()
	deliveries.EXPECT().ListByWebhook(mock.Anything, fixedID, appWebhook.MaxDeliveriesLimit).Return(nil, nil).Once()

	svc := newService(repo, deliveries)
	_, err := svc.Deliveries(context.Background(), "owner-1", fixedID, 0)
	require.NoError(t, err)
	_, err = svc.Deliveries(context.Background(), "owner-1", fixedID, 10000)
	require.NoError(t, err)
}
