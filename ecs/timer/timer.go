package timer

import (
	"sort"
	"time"
)

// Owner identifies what a timer belongs to. Zero means the timer is owned by
// the scheduler itself (room scope) and only dies with CancelAll.
type Owner uint64

// Handle cancels a pending timer. The zero Handle is valid and inert.
type Handle struct {
	s  *Scheduler
	id uint64
}

// Cancel stops the timer if it has not fired yet. Safe to call repeatedly.
func (h Handle) Cancel() {
	if h.s == nil || h.id == 0 {
		return
	}
	h.s.cancel(h.id)
}

// Pending reports whether the timer is still waiting to fire.
func (h Handle) Pending() bool {
	if h.s == nil || h.id == 0 {
		return false
	}
	_, ok := h.s.pending[h.id]
	return ok
}

type entry struct {
	id    uint64
	owner Owner
	due   time.Duration
	fn    func()
}

// Scheduler runs delayed callbacks against a clock advanced by the frame loop.
// Nothing runs concurrently: callbacks fire inside Advance on the caller's
// goroutine, in due order, ties broken by scheduling order.
type Scheduler struct {
	now     time.Duration
	nextID  uint64
	pending map[uint64]*entry
	owned   map[Owner]map[uint64]struct{}
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: make(map[uint64]*entry),
		owned:   make(map[Owner]map[uint64]struct{}),
	}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	if s == nil {
		return 0
	}
	return s.now
}

// After schedules fn to run once d has elapsed on the scheduler clock.
func (s *Scheduler) After(owner Owner, d time.Duration, fn func()) Handle {
	if s == nil || fn == nil {
		return Handle{}
	}
	if d < 0 {
		d = 0
	}
	if s.pending == nil {
		s.pending = make(map[uint64]*entry)
	}
	if s.owned == nil {
		s.owned = make(map[Owner]map[uint64]struct{})
	}
	s.nextID++
	e := &entry{id: s.nextID, owner: owner, due: s.now + d, fn: fn}
	s.pending[e.id] = e
	if owner != 0 {
		set, ok := s.owned[owner]
		if !ok {
			set = make(map[uint64]struct{})
			s.owned[owner] = set
		}
		set[e.id] = struct{}{}
	}
	return Handle{s: s, id: e.id}
}

// Advance moves the clock forward by dt and fires every timer that came due.
// Timers scheduled by a firing callback fire in the same Advance if they are
// already due.
func (s *Scheduler) Advance(dt time.Duration) {
	if s == nil {
		return
	}
	if dt > 0 {
		s.now += dt
	}
	for {
		due := s.dueEntries()
		if len(due) == 0 {
			return
		}
		for _, e := range due {
			// an earlier callback in this batch may have cancelled it
			if _, ok := s.pending[e.id]; !ok {
				continue
			}
			s.remove(e)
			e.fn()
		}
	}
}

// CancelOwner drops every pending timer registered to owner.
func (s *Scheduler) CancelOwner(owner Owner) {
	if s == nil || owner == 0 {
		return
	}
	for id := range s.owned[owner] {
		delete(s.pending, id)
	}
	delete(s.owned, owner)
}

// CancelAll drops every pending timer.
func (s *Scheduler) CancelAll() {
	if s == nil {
		return
	}
	s.pending = make(map[uint64]*entry)
	s.owned = make(map[Owner]map[uint64]struct{})
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pending)
}

func (s *Scheduler) cancel(id uint64) {
	e, ok := s.pending[id]
	if !ok {
		return
	}
	s.remove(e)
}

func (s *Scheduler) remove(e *entry) {
	delete(s.pending, e.id)
	if e.owner == 0 {
		return
	}
	if set, ok := s.owned[e.owner]; ok {
		delete(set, e.id)
		if len(set) == 0 {
			delete(s.owned, e.owner)
		}
	}
}

func (s *Scheduler) dueEntries() []*entry {
	var out []*entry
	for _, e := range s.pending {
		if e.due <= s.now {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].due != out[j].due {
			return out[i].due < out[j].due
		}
		return out[i].id < out[j].id
	})
	return out
}
