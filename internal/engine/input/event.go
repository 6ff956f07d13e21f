// Package input tracks pointer drag gestures and defines host-independent events.
package input

// EventType identifies a host event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventPointerDown
	EventPointerMove
	EventPointerUp
)

var eventNames = [...]string{
	EventNone:        "none",
	EventQuit:        "quit",
	EventResize:      "resize",
	EventKeyDown:     "key_down",
	EventPointerDown: "pointer_down",
	EventPointerMove: "pointer_move",
	EventPointerUp:   "pointer_up",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// Key is a host-independent key code.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyScreenshot
)

// Event is a processed host event. X/Y are pointer coordinates in pixels;
// Width/Height carry the new viewport size of a resize.
type Event struct {
	Type   EventType `json:"type"`
	X      float64   `json:"x,omitempty"`
	Y      float64   `json:"y,omitempty"`
	Width  int       `json:"width,omitempty"`
	Height int       `json:"height,omitempty"`
	Key    Key       `json:"key,omitempty"`
}

// Coalesce collapses runs of consecutive pointer moves to the last one in
// place. Drag deltas telescope, so the accumulated rotation is unchanged.
func Coalesce(events []Event) []Event {
	out := events[:0]
	for _, e := range events {
		if e.Type == EventPointerMove && len(out) > 0 && out[len(out)-1].Type == EventPointerMove {
			out[len(out)-1] = e
			continue
		}
		out = append(out, e)
	}
	return out
}
