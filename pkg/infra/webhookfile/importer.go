package webhookfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

// legacyWebhook mirrors one entry of the old webhooks.json array. Older
// exports wrote numbers as strings, so decoding is weakly typed.
type legacyWebhook struct {
	ID              string     `mapstructure:"id"`
	UserID          string     `mapstructure:"userId"`
	URL             string     `mapstructure:"url"`
	Events          []string   `mapstructure:"events"`
	Secret          string     `mapstructure:"secret"`
	Active          *bool      `mapstructure:"active"`
	FailureCount    int        `mapstructure:"failureCount"`
	CreatedAt       time.Time  `mapstructure:"createdAt"`
	LastTriggeredAt *time.Time `mapstructure:"lastTriggeredAt"`
}

type ImportReport struct {
	Imported int
	Skipped  int
	Invalid  []error
}

type Importer struct {
	logger *logrus.Logger
	repo   webhook.Repository
	now    func() time.Time
}

func NewImporter(logger *logrus.Logger, repo webhook.Repository) *Importer {
	return &Importer{logger: logger, repo: repo, now: time.Now}
}

// Import creates every valid record from r. Records whose id already exists
// are skipped; invalid ones are collected in the report.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*ImportReport, error) {
	var raw []map[string]interface{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse legacy webhooks file: %w", err)
	}

	report := &ImportReport{}
	for idx, entry := range raw {
		wh, err := i.convert(entry)
		if err != nil {
			report.Invalid = append(report.Invalid, fmt.Errorf("entry %d: %w", idx, err))
			continue
		}

		_, err = i.repo.GetByID(ctx, wh.ID)
		switch {
		case err == nil:
			report.Skipped++
			continue
		case !errors.Is(err, webhook.ErrWebhookNotFound):
			return report, err
		}

		if err := i.repo.Create(ctx, wh); err != nil {
			return report, err
		}
		report.Imported++
		i.logger.WithFields(logrus.Fields{
			"webhook_id": wh.ID.String(),
			"owner_id":   wh.OwnerID,
		}).Info("imported legacy webhook")
	}
	return report, nil
}

func (i *Importer) convert(entry map[string]interface{}) (*webhook.Webhook, error) {
	var legacy legacyWebhook
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &legacy,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			millisToTimeHook,
		),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(entry); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(legacy.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", legacy.ID, err)
	}
	kinds, err := webhook.ParseEventKinds(legacy.Events)
	if err != nil {
		return nil, err
	}
	createdAt := legacy.CreatedAt
	if createdAt.IsZero() {
		createdAt = i.now()
	}

	wh, err := webhook.NewWebhook(id, legacy.UserID, legacy.URL, kinds, legacy.Secret, createdAt.UTC())
	if err != nil {
		return nil, err
	}
	if legacy.Active != nil {
		wh.Active = *legacy.Active
	}
	wh.FailureCount = legacy.FailureCount
	if wh.FailureCount >= webhook.FailureThreshold {
		wh.Active = false
	}
	if legacy.LastTriggeredAt != nil {
		t := legacy.LastTriggeredAt.UTC()
		wh.LastTriggeredAt = &t
	}
	return wh, nil
}

// millisToTimeHook accepts unix millisecond timestamps, which some exports
// used instead of ISO strings.
func millisToTimeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Float64:
		return time.UnixMilli(int64(data.(float64))).UTC(), nil
	case reflect.Int, reflect.Int64:
		return time.UnixMilli(reflect.ValueOf(data).Int()).UTC(), nil
	}
	return data, nil
}
