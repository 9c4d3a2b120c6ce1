package event

// ReindexRequestedEvent asks every instance to rebuild its search snapshot.
type ReindexRequestedEvent struct {
	Reason string `json:"reason"`
}

func (e ReindexRequestedEvent) Type() string {
	return ReindexRequestedEventType
}
