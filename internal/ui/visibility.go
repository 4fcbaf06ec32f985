package ui

import (
	"sort"
)

// VisibilityTracker tells observers when their row scrolls into view. The
// model reports the IDs on screen after every update; a watch fires once
// each time its target goes from hidden to visible. A new watch starts as
// hidden, so a target that is already on screen fires on the next report.
type VisibilityTracker struct {
	next    int
	watches map[int]*watch
}

type watch struct {
	target    int
	onVisible func()
	visible   bool
}

// NewVisibilityTracker creates an empty tracker
func NewVisibilityTracker() *VisibilityTracker {
	return &VisibilityTracker{watches: make(map[int]*watch)}
}

// Observe implements mealplan.VisibilityObserver
func (t *VisibilityTracker) Observe(targetID int, onVisible func()) func() {
	t.next++
	handle := t.next
	t.watches[handle] = &watch{target: targetID, onVisible: onVisible}
	return func() { delete(t.watches, handle) }
}

// Report updates every watch with the IDs currently on screen. Callbacks
// may observe or detach; watches added during a report wait for the next.
func (t *VisibilityTracker) Report(visibleIDs []int) {
	onScreen := make(map[int]bool, len(visibleIDs))
	for _, id := range visibleIDs {
		onScreen[id] = true
	}

	handles := make([]int, 0, len(t.watches))
	for h := range t.watches {
		handles = append(handles, h)
	}
	sort.Ints(handles)

	for _, h := range handles {
		w, ok := t.watches[h]
		if !ok {
			continue
		}
		if !onScreen[w.target] {
			w.visible = false
			continue
		}
		if w.visible {
			continue
		}
		w.visible = true
		w.onVisible()
	}
}

// Watching returns how many watches are registered
func (t *VisibilityTracker) Watching() int {
	return len(t.watches)
}
