package content

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

type Change struct {
	Action Action `json:"action"`
	Item   Item   `json:"item"`
}

// Diff compares two snapshots keyed by id. Output order is deterministic:
// changes follow the order of next, deletions follow the order of prev.
func Diff(prev, next []Item) []Change {
	before := make(map[string]Item, len(prev))
	for _, it := range prev {
		before[it.ID] = it
	}
	seen := make(map[string]struct{}, len(next))

	var changes []Change
	for _, it := range next {
		seen[it.ID] = struct{}{}
		old, ok := before[it.ID]
		switch {
		case !ok:
			changes = append(changes, Change{Action: ActionCreated, Item: it})
		case old.Hash() != it.Hash():
			changes = append(changes, Change{Action: ActionUpdated, Item: it})
		}
	}
	for _, it := range prev {
		if _, ok := seen[it.ID]; !ok {
			changes = append(changes, Change{Action: ActionDeleted, Item: it})
		}
	}
	return changes
}
