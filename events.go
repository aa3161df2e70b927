package platypus

// EventKind identifies controller events.
type EventKind string

const (
	EventFalling       EventKind = "falling"
	EventGroundContact EventKind = "ground_contact"
	EventWallContact   EventKind = "wall_contact"
	EventJump          EventKind = "jump"
	EventWallJump      EventKind = "wall_jump"
	EventDoubleJump    EventKind = "double_jump"
	EventWallSlide     EventKind = "wall_slide"
	// EventParent reports an attachment change. Surface carries the new
	// supporting surface id, 0 when detached.
	EventParent EventKind = "parent"
)

// Event is a state-transition notification. Surface is set for EventParent
// and EventGroundContact, zero otherwise.
type Event struct {
	Kind    EventKind
	Surface uint64
}

// Listener receives the events of a frame, in order, once per Update.
type Listener func(Event)

// eventQueue is a simple FIFO. Transitions are queued as they are detected
// and flushed in one pass at the end of Update so ordering is explicit.
type eventQueue struct {
	items []Event
}

func (q *eventQueue) push(kind EventKind) {
	q.items = append(q.items, Event{Kind: kind})
}

func (q *eventQueue) pushSurface(kind EventKind, surface uint64) {
	q.items = append(q.items, Event{Kind: kind, Surface: surface})
}

func (q *eventQueue) drain() []Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
