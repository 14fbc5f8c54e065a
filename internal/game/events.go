package game

import (
	"fmt"

	"github.com/vovakirdan/tui-outpost/internal/world"
)

// Event is a discrete player intent fed into the simulation. The platform
// layer produces events; Game.ProcessEvents consumes them in arrival order.
// Kinds the simulation does not recognize are logged and dropped.
type Event interface {
	Kind() string
}

// RequestEmbark asks to travel to a scouted site.
type RequestEmbark struct {
	Location world.Location
}

// KeyAction requests a one-tile step while embarked.
type KeyAction struct {
	Direction Direction
}

// RequestReturnToBase asks to leave the current site.
type RequestReturnToBase struct{}

// Quit asks the frame loop to stop.
type Quit struct{}

// ResizeViewport records the platform's current viewport size.
type ResizeViewport struct {
	Width  float64
	Height float64
}

// SurveySurroundings spends energy to scout a new embark site.
type SurveySurroundings struct{}

// BuyCircle adds circles to the ledger.
type BuyCircle struct {
	Amount float64
}

func (RequestEmbark) Kind() string       { return "request_embark" }
func (KeyAction) Kind() string           { return "key_action" }
func (RequestReturnToBase) Kind() string { return "request_return_to_base" }
func (Quit) Kind() string                { return "quit" }
func (ResizeViewport) Kind() string      { return "resize_viewport" }
func (SurveySurroundings) Kind() string  { return "survey_surroundings" }
func (BuyCircle) Kind() string           { return "buy_circle" }

// Direction is a cardinal movement direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Delta returns the unit step for the direction. ok is false for DirNone
// and unknown values.
func (d Direction) Delta() (dx, dy Step, ok bool) {
	switch d {
	case DirUp:
		return 0, -1, true
	case DirDown:
		return 0, 1, true
	case DirLeft:
		return -1, 0, true
	case DirRight:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}

func (d Direction) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// EventQueue is a FIFO of pending events. The zero value is ready to use.
// It is not safe for concurrent use.
type EventQueue struct {
	events []Event
}

// Push appends events to the back of the queue.
func (q *EventQueue) Push(events ...Event) {
	q.events = append(q.events, events...)
}

// Pop removes and returns the oldest event.
func (q *EventQueue) Pop() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = nil
	}
	return ev, true
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}
