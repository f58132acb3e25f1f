package input

import (
	"sync"
)

// PointerKind distinguishes mouse from touch pointers. Both follow the same tap/drag rules.
type PointerKind int

const (
	PointerMouse PointerKind = iota // mouse or trackpad
	PointerTouch                    // touch screen
)

// Event is a raw input event as delivered by the window or UI layer.
type Event interface {
	isEvent()
}

// PointerDown starts a press cycle. OverUI is set when the press landed on a UI control.
type PointerDown struct {
	X, Y   float32
	Kind   PointerKind
	OverUI bool
}

// PointerMove reports the pointer's current position.
type PointerMove struct {
	X, Y float32
}

// PointerUp ends a press cycle.
type PointerUp struct {
	X, Y   float32
	OverUI bool
}

// KeyDown reports a key press. Key uses the common key codes.
type KeyDown struct {
	Key int
}

// KeyUp reports a key release.
type KeyUp struct {
	Key int
}

// SelectEnd reports a VR controller trigger release.
type SelectEnd struct{}

// LocationActivated reports a preset location button press. The UI layer must not also forward
// the click as a pointer event; if it does, the current press cycle is consumed.
type LocationActivated struct {
	Label string
}

// FocusLost reports that the window stopped receiving input, so held keys and presses are dropped.
type FocusLost struct{}

func (PointerDown) isEvent()       {}
func (PointerMove) isEvent()       {}
func (PointerUp) isEvent()         {}
func (KeyDown) isEvent()           {}
func (KeyUp) isEvent()             {}
func (SelectEnd) isEvent()         {}
func (LocationActivated) isEvent() {}
func (FocusLost) isEvent()         {}

// Queue collects events from input callbacks until the tick goroutine drains them.
// Push never blocks on the consumer.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event.
func (q *Queue) Push(ev Event) {
	if ev == nil {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns all queued events in arrival order.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
