package webhook

import (
	"fmt"
	"strings"
)

type EventKind string

const (
	EventBlogCreated          EventKind = "blog.created"
	EventBlogUpdated          EventKind = "blog.updated"
	EventBlogDeleted          EventKind = "blog.deleted"
	EventProjectCreated       EventKind = "project.created"
	EventProjectUpdated       EventKind = "project.updated"
	EventProjectDeleted       EventKind = "project.deleted"
	EventResearchCreated      EventKind = "research.created"
	EventResearchUpdated      EventKind = "research.updated"
	EventResearchDeleted      EventKind = "research.deleted"
	EventHardwareCreated      EventKind = "hardware.created"
	EventHardwareUpdated      EventKind = "hardware.updated"
	EventHardwareDeleted      EventKind = "hardware.deleted"
	EventContactSubmitted     EventKind = "contact.submitted"
	EventNewsletterSubscribed EventKind = "newsletter.subscribed"
	EventWebhookTest          EventKind = "webhook.test"
)

var knownEvents = map[EventKind]struct{}{
	EventBlogCreated:          {},
	EventBlogUpdated:          {},
	EventBlogDeleted:          {},
	EventProjectCreated:       {},
	EventProjectUpdated:       {},
	EventProjectDeleted:       {},
	EventResearchCreated:      {},
	EventResearchUpdated:      {},
	EventResearchDeleted:      {},
	EventHardwareCreated:      {},
	EventHardwareUpdated:      {},
	EventHardwareDeleted:      {},
	EventContactSubmitted:     {},
	EventNewsletterSubscribed: {},
	EventWebhookTest:          {},
}

func (e EventKind) Known() bool {
	_, ok := knownEvents[e]
	return ok
}

func ParseEventKind(value string) (EventKind, error) {
	kind := EventKind(strings.TrimSpace(strings.ToLower(value)))
	if !kind.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, value)
	}
	return kind, nil
}

// ContentEvent maps a content type and action ("created", "updated",
// "deleted") to its event kind.
func ContentEvent(contentType, action string) (EventKind, error) {
	return ParseEventKind(contentType + "." + action)
}

// ParseEventKinds validates values and collapses duplicates, keeping the
// first occurrence order.
func ParseEventKinds(values []string) ([]EventKind, error) {
	if len(values) == 0 {
		return nil, ErrNoEvents
	}
	seen := make(map[EventKind]struct{}, len(values))
	kinds := make([]EventKind, 0, len(values))
	for _, v := range values {
		kind, err := ParseEventKind(v)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[kind]; dup {
			continue
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
