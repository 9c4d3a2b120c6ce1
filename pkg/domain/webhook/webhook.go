package webhook

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FailureThreshold is the number of consecutive failed deliveries after
// which a webhook is deactivated.
const FailureThreshold = 10

var (
	ErrWebhookNotFound = errors.New("webhook not found")
	ErrUnauthorized    = errors.New("webhook belongs to another owner")
	ErrInvalidURL      = errors.New("url must be an absolute http or https URL")
	ErrNoEvents        = errors.New("at least one event is required")
	ErrUnknownEvent    = errors.New("unknown event kind")
	ErrOwnerRequired   = errors.New("owner id is required")
	ErrSecretRequired  = errors.New("secret is required")
)

type Webhook struct {
	ID              uuid.UUID   `json:"id" gorm:"primaryKey"`
	OwnerID         string      `json:"owner_id" gorm:"index;not null"`
	URL             string      `json:"url" gorm:"column:target_url;not null"`
	Events          []EventKind `json:"events" gorm:"serializer:json;not null"`
	Secret          string      `json:"-" gorm:"not null"`
	Active          bool        `json:"active"`
	FailureCount    int         `json:"failure_count"`
	LastTriggeredAt *time.Time  `json:"last_triggered_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Webhook) TableName() string {
	return "webhooks"
}

func NewWebhook(id uuid.UUID, ownerID, rawURL string, events []EventKind, secret string, now time.Time) (*Webhook, error) {
	wh := &Webhook{
		ID:        id,
		OwnerID:   strings.TrimSpace(ownerID),
		URL:       strings.TrimSpace(rawURL),
		Events:    events,
		Secret:    secret,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := wh.Validate(); err != nil {
		return nil, err
	}
	return wh, nil
}

func (w *Webhook) Validate() error {
	if w.OwnerID == "" {
		return ErrOwnerRequired
	}
	if err := ValidateURL(w.URL); err != nil {
		return err
	}
	if len(w.Events) == 0 {
		return ErrNoEvents
	}
	for _, e := range w.Events {
		if !e.Known() {
			return fmt.Errorf("%w: %q", ErrUnknownEvent, e)
		}
	}
	if w.Secret == "" {
		return ErrSecretRequired
	}
	return nil
}

func (w *Webhook) Subscribes(kind EventKind) bool {
	for _, e := range w.Events {
		if e == kind {
			return true
		}
	}
	return false
}

func ValidateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	if u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
