package ecs

import (
	"time"

	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/ecs/timer"
)

// World owns entities, component stores, and the timers scoped to them.
// A world lives exactly as long as the room that built it.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*componentStore
	timers   *timer.Scheduler
	closed   bool
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*componentStore),
		timers: timer.NewScheduler(),
	}
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and cancels the timers it owns.
// Returns false if e was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	w.timers.CancelOwner(timer.Owner(e))
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// After schedules fn once d has elapsed. The timer dies with owner; pass 0
// for room-scoped timers that only die with the world.
func (w *World) After(owner Entity, d time.Duration, fn func()) timer.Handle {
	if w == nil || w.closed {
		return timer.Handle{}
	}
	if owner != 0 && !w.entities.isAlive(owner) {
		return timer.Handle{}
	}
	return w.timers.After(timer.Owner(owner), d, fn)
}

// AdvanceTimers moves the world clock and fires due timers.
func (w *World) AdvanceTimers(dt time.Duration) {
	if w == nil || w.closed {
		return
	}
	w.timers.Advance(dt)
}

// PendingTimers returns the number of timers that have not fired yet.
func (w *World) PendingTimers() int {
	if w == nil {
		return 0
	}
	return w.timers.Len()
}

// Close invalidates every pending timer. The world is unusable for timers
// afterwards; entities and components stay readable for snapshots.
func (w *World) Close() {
	if w == nil || w.closed {
		return
	}
	w.timers.CancelAll()
	w.closed = true
}

func (w *World) store(id component.ComponentID, create bool) *componentStore {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*componentStore)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = newComponentStore()
		w.stores[id] = s
	}
	return s
}

// Now returns the world clock: the total time advanced so far.
func (w *World) Now() time.Duration {
	if w == nil {
		return 0
	}
	return w.timers.Now()
}
