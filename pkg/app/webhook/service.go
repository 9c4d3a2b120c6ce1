package webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDeliveriesLimit = 50
	MaxDeliveriesLimit     = 500
)

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=service_mock.go --case=underscore --with-expecter
type Service interface {
	// Register validates and stores a new webhook. The returned record is
	// the only place its secret is ever exposed.
	Register(ctx context.Context, ownerID, url string, events []string) (*webhook.Webhook, error)
	List(ctx context.Context, ownerID string) ([]webhook.Webhook, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	Deliveries(ctx context.Context, ownerID string, id uuid.UUID, limit int) ([]webhook.Delivery, error)
}

type ServiceOpts struct {
	TimeProvider   func() time.Time
	UuidProvider   func() uuid.UUID
	SecretProvider func() (string, error)
}

type service struct {
	logger         *logrus.Logger
	repo           webhook.Repository
	deliveries     webhook.DeliveryRepository
	timeProvider   func() time.Time
	uuidProvider   func() uuid.UUID
	secretProvider func() (string, error)
}

func NewService(
	logger *logrus.Logger,
	repo webhook.Repository,
	deliveries webhook.DeliveryRepository,
	opts *ServiceOpts,
) Service {
	s := &service{
		logger:         logger,
		repo:           repo,
		deliveries:     deliveries,
		timeProvider:   time.Now,
		uuidProvider:   uuid.New,
		secretProvider: GenerateSecret,
	}
	if opts != nil {
		if opts.TimeProvider != nil {
			s.timeProvider = opts.TimeProvider
		}
		if opts.UuidProvider != nil {
			s.uuidProvider = opts.UuidProvider
		}
		if opts.SecretProvider != nil {
			s.secretProvider = opts.SecretProvider
		}
	}
	return s
}

func (s *service) Register(ctx context.Context, ownerID, url string, events []string) (*webhook.Webhook, error) {
	if err := webhook.ValidateURL(url); err != nil {
		return nil, err
	}
	kinds, err := webhook.ParseEventKinds(events)
	if err != nil {
		return nil, err
	}
	secret, err := s.secretProvider()
	if err != nil {
		return nil, err
	}

	wh, err := webhook.NewWebhook(s.uuidProvider(), ownerID, url, kinds, secret, s.timeProvider().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, wh); err != nil {
		return nil, fmt.Errorf("failed to store webhook: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"webhook_id": wh.ID.String(),
		"owner_id":   wh.OwnerID,
		"events":     wh.Events,
	}).Info("webhook registered")

	return wh, nil
}

func (s *service) List(ctx context.Context, ownerID string) ([]webhook.Webhook, error) {
	hooks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	for i := range hooks {
		hooks[i].Secret = ""
	}
	return hooks, nil
}

func (s *service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"webhook_id": id.String(),
		"owner_id":   ownerID,
	}).Info("webhook deleted")
	return nil
}

func (s *service) Deliveries(ctx context.Context, ownerID string, id uuid.UUID, limit int) ([]webhook.Delivery, error) {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultDeliveriesLimit
	}
	if limit > MaxDeliveriesLimit {
		limit = MaxDeliveriesLimit
	}
	return s.deliveries.ListByWebhook(ctx, id, limit)
}

func (s *service) owned(ctx context.Context, ownerID string, id uuid.UUID) (*webhook.Webhook, error) {
	wh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, webhook.ErrWebhookNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load webhook: %w", err)
	}
	if wh.OwnerID != ownerID {
		return nil, webhook.ErrUnauthorized
	}
	return wh, nil
}
