package event

import "github.com/folioworks/folio/pkg/domain/content"

// ContentChangedEvent is published once per item the content watcher sees
// created, updated or deleted.
type ContentChangedEvent struct {
	ItemID   string         `json:"item_id"`
	ItemType content.Type   `json:"item_type"`
	Action   content.Action `json:"action"`
	Title    string         `json:"title"`
	URL      string         `json:"url"`
}

func NewContentChangedEvent(change content.Change) ContentChangedEvent {
	return ContentChangedEvent{
		ItemID:   change.Item.ID,
		ItemType: change.Item.Type,
		Action:   change.Action,
		Title:    change.Item.Title,
		URL:      change.Item.URL,
	}
}

func (e ContentChangedEvent) Type() string {
	return ContentChangedEventType
}
