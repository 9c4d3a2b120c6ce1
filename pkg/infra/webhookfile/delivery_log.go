package webhookfile

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/google/uuid"
)

// DeliveryLog is an append-only JSON lines file of delivery entries. It
// serves installations that keep webhooks in sqlite but want the log on
// disk for shipping elsewhere.
type DeliveryLog struct {
	mu   sync.Mutex
	path string
	file *os.File
}

func NewDeliveryLog(path string) (*DeliveryLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create delivery log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open delivery log: %w", err)
	}
	return &DeliveryLog{path: path, file: f}, nil
}

func (l *DeliveryLog) Append(_ context.Context, delivery *webhook.Delivery) error {
	if delivery.ID == uuid.Nil {
		delivery.ID = uuid.New()
	}
	line, err := json.Marshal(delivery)
	if err != nil {
		return fmt.Errorf("failed to encode delivery: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return errors.New("delivery log is closed")
	}
	if _, err := l.file.Write(line); err != nil {
		return fmt.Errorf("failed to append delivery: %w", err)
	}
	return nil
}

// ListByWebhook scans the whole file. Lines that fail to decode are skipped.
func (l *DeliveryLog) ListByWebhook(ctx context.Context, webhookID uuid.UUID, limit int) ([]webhook.Delivery, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open delivery log: %w", err)
	}
	defer f.Close()

	var matched []webhook.Delivery
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var d webhook.Delivery
		if err := json.Unmarshal(scanner.Bytes(), &d); err != nil {
			continue
		}
		if d.WebhookID == webhookID {
			matched = append(matched, d)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read delivery log: %w", err)
	}

	out := make([]webhook.Delivery, 0, len(matched))
	for i := len(matched) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, matched[i])
	}
	return out, nil
}

func (l *DeliveryLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
