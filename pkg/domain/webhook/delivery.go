package webhook

import (
	"time"

	"github.com/google/uuid"
)

const (
	SignatureHeader = "X-Webhook-Signature"
	EventHeader     = "X-Webhook-Event"
	TimestampHeader = "X-Webhook-Timestamp"
)

// Delivery is one entry of the append-only delivery log. StatusCode is 0
// when the request never got a response.
type Delivery struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey"`
	WebhookID  uuid.UUID `json:"webhook_id" gorm:"index;not null"`
	Event      EventKind `json:"event" gorm:"not null"`
	StatusCode int       `json:"status_code"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Delivery) TableName() string {
	return "webhook_deliveries"
}

// Payload is the body posted to subscribers. The signature covers the JSON
// encoding of the payload with Signature left empty.
type Payload struct {
	Event     EventKind   `json:"event"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data"`
	Signature string      `json:"signature,omitempty"`
}
