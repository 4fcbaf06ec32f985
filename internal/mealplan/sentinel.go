package mealplan

// VisibilityObserver is supplied by the host that renders the results. It
// calls onVisible each time the element for targetID comes into view, and
// stops after detach.
type VisibilityObserver interface {
	Observe(targetID int, onVisible func()) (detach func())
}

// observation identifies what the sentinel is attached to. The generation
// and length are part of it so a reset or a grown list always re-attaches,
// even when the last ID happens to repeat.
type observation struct {
	generation uint64
	length     int
	lastID     int
}

// Sentinel requests the next page when the last rendered result becomes
// visible.
type Sentinel struct {
	observer  VisibilityObserver
	onAdvance func(PageRequest)

	detach   func()
	attached bool
	current  observation
}

// NewSentinel creates a sentinel. onAdvance receives every page request the
// sentinel produces and must Begin it before returning, so the loading flag
// is up before the next visibility callback can run.
func NewSentinel(observer VisibilityObserver, onAdvance func(PageRequest)) *Sentinel {
	return &Sentinel{observer: observer, onAdvance: onAdvance}
}

// Sync points the observation at the last result of s. Call it after every
// change to s; it is a no-op when the last result is unchanged.
func (se *Sentinel) Sync(s *State) {
	lastID, ok := s.LastResultID()
	if !ok {
		se.Detach()
		return
	}

	next := observation{generation: s.generation, length: len(s.Results), lastID: lastID}
	if se.attached && se.current == next {
		return
	}

	se.Detach()
	se.current = next
	se.attached = true
	se.detach = se.observer.Observe(lastID, func() { se.visible(s, next) })
}

// Detach drops the current observation, if any
func (se *Sentinel) Detach() {
	if se.detach != nil {
		se.detach()
	}
	se.detach = nil
	se.attached = false
}

// Attached reports whether an observation is registered
func (se *Sentinel) Attached() bool {
	return se.attached
}

func (se *Sentinel) visible(s *State, obs observation) {
	if !se.attached || se.current != obs {
		return
	}
	req, ok := s.Advance()
	if !ok {
		return
	}
	if se.onAdvance != nil {
		se.onAdvance(req)
	}
}
