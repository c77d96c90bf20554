package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventModeChanged     = "mode_changed"
	EventStrategyChanged = "strategy_changed"
	EventStrategyFailed  = "strategy_failed"
)

// ControllerEvent is emitted by the slope controller.
type ControllerEvent struct {
	Entity   Entity
	Mode     string
	Strategy string
	Err      error
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
