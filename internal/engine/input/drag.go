package input

// DeltaSink receives pointer displacements while a drag is active.
type DeltaSink interface {
	ApplyDragDelta(dx, dy float64)
}

// DragState is the drag gesture state. Last is meaningful only while Active.
type DragState struct {
	Active bool
	LastX  float64
	LastY  float64
}

// DragTracker turns press/move/release into drag deltas.
type DragTracker struct {
	state DragState
	sink  DeltaSink
}

// NewDragTracker creates an inactive tracker emitting deltas to sink.
func NewDragTracker(sink DeltaSink) *DragTracker {
	return &DragTracker{sink: sink}
}

// Press starts a gesture anchored at (x, y). Pressing again re-anchors.
func (d *DragTracker) Press(x, y float64) {
	d.state = DragState{Active: true, LastX: x, LastY: y}
}

// Move emits the displacement since the previous pointer position.
// Moves outside a gesture are dropped, not buffered.
func (d *DragTracker) Move(x, y float64) {
	if !d.state.Active {
		return
	}
	dx, dy := x-d.state.LastX, y-d.state.LastY
	d.state.LastX, d.state.LastY = x, y
	if d.sink != nil {
		d.sink.ApplyDragDelta(dx, dy)
	}
}

// Release ends the gesture.
func (d *DragTracker) Release() {
	d.state.Active = false
}

// State returns a copy of the gesture state.
func (d *DragTracker) State() DragState {
	return d.state
}

// Handle routes pointer events to Press/Move/Release and reports whether
// the event was a pointer event.
func (d *DragTracker) Handle(e Event) bool {
	switch e.Type {
	case EventPointerDown:
		d.Press(e.X, e.Y)
	case EventPointerMove:
		d.Move(e.X, e.Y)
	case EventPointerUp:
		d.Release()
	default:
		return false
	}
	return true
}
