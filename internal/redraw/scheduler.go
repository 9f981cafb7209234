// Package redraw decides when a frame has to be rendered again.
package redraw

import "sync"

type State int

const (
	Clean State = iota
	Dirty
)

func (s State) String() string {
	if s == Clean {
		return "CLEAN"
	}
	return "DIRTY"
}

// Ticket identifies one render pass started by Begin.
type Ticket struct {
	gen uint64
}

// Scheduler coalesces view mutations into render passes. Any number of
// Invalidate calls between two passes owe exactly one pass. A pass that
// completes after a newer Invalidate leaves the scheduler DIRTY, so its
// result is replaced by exactly one more pass.
type Scheduler struct {
	mu       sync.Mutex
	state    State
	gen      uint64
	inFlight bool
	passes   uint64
}

// New returns a DIRTY scheduler; the first frame always renders.
func New() *Scheduler {
	return &Scheduler{state: Dirty}
}

func (s *Scheduler) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = Dirty
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pending returns the number of owed passes: 0 or 1.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Dirty {
		return 1
	}
	return 0
}

// Begin starts a pass. It reports false when nothing is owed or another
// pass is still in flight.
func (s *Scheduler) Begin() (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Clean || s.inFlight {
		return Ticket{}, false
	}
	s.inFlight = true
	return Ticket{gen: s.gen}, true
}

// Complete ends a pass. The scheduler becomes CLEAN only if the view did not
// change since the pass began.
func (s *Scheduler) Complete(t Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.passes++
	if t.gen == s.gen {
		s.state = Clean
	}
}

// Abort ends a pass that did not produce a frame. The pass stays owed.
func (s *Scheduler) Abort(Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// Current reports whether a pass begun with t would still be up to date.
func (s *Scheduler) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.gen == s.gen
}

// Passes returns the number of completed passes.
func (s *Scheduler) Passes() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passes
}
