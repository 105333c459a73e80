package app

import "sync"

// DragSession tracks one drag gesture over the note list. Hovering the same
// target repeatedly only reorders once.
type DragSession struct {
	mu         sync.Mutex
	notes      *NoteStore
	dragged    string
	lastTarget string
}

func NewDragSession(notes *NoteStore) *DragSession {
	return &DragSession{notes: notes}
}

// Start begins dragging id.
func (d *DragSession) Start(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dragged = id
	d.lastTarget = ""
}

// Dragging returns the id being dragged, if any.
func (d *DragSession) Dragging() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dragged
}

// Over moves the dragged note to targetID's position. It is ignored when no
// drag is active, when hovering the dragged note itself, or when targetID is
// the target already handled.
func (d *DragSession) Over(targetID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dragged == "" || targetID == d.dragged || targetID == d.lastTarget {
		return false
	}
	d.lastTarget = targetID
	return d.notes.Move(d.dragged, targetID)
}

// End clears the session.
func (d *DragSession) End() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dragged = ""
	d.lastTarget = ""
}
