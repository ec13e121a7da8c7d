// Package events is the synchronous publish/subscribe channel that connects
// the simulation core to observers such as the HUD and audio.
package events

// Type names an event on the bus.
type Type string

const (
	PlayerHealthChanged Type = "player-health-changed"
	PlayerScoreChanged  Type = "player-score-changed"
	PlayerGoldChanged   Type = "player-gold-changed"
	ActivateArena       Type = "activate-arena"
	DeactivateArena     Type = "deactivate-arena"
	GameOver            Type = "game-over"
	// PlayerActivate is raised by the interact input; buttons in range react.
	PlayerActivate Type = "player-activate"
)

// Event is a published message. Value carries the numeric payload (lives,
// score, gold) and is zero for signal-only events.
type Event struct {
	Type  Type
	Value int
}

type Handler func(Event)

type subscriber struct {
	id uint64
	fn Handler
}

// Bus dispatches events to subscribers in subscription order. Publish is
// immediate: handlers run before Publish returns. The bus is not safe for
// concurrent use; the simulation is single-threaded.
type Bus struct {
	nextID uint64
	subs   map[Type][]subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Type][]subscriber)}
}

// Subscription detaches a handler. The zero value is inert.
type Subscription struct {
	bus *Bus
	typ Type
	id  uint64
}

// Unsubscribe removes the handler. Safe to call more than once and from
// inside a handler.
func (s Subscription) Unsubscribe() {
	if s.bus == nil || s.id == 0 {
		return
	}
	s.bus.remove(s.typ, s.id)
}

func (b *Bus) Subscribe(typ Type, fn Handler) Subscription {
	if b == nil || fn == nil {
		return Subscription{}
	}
	if b.subs == nil {
		b.subs = make(map[Type][]subscriber)
	}
	b.nextID++
	b.subs[typ] = append(b.subs[typ], subscriber{id: b.nextID, fn: fn})
	return Subscription{bus: b, typ: typ, id: b.nextID}
}

// Publish delivers the event to the handlers subscribed at call time.
// Handlers removed during dispatch are not called afterwards.
func (b *Bus) Publish(typ Type, value int) {
	if b == nil {
		return
	}
	subs := append([]subscriber(nil), b.subs[typ]...)
	evt := Event{Type: typ, Value: value}
	for _, s := range subs {
		if !b.subscribed(typ, s.id) {
			continue
		}
		s.fn(evt)
	}
}

// Subscribers returns the number of handlers attached to typ.
func (b *Bus) Subscribers(typ Type) int {
	if b == nil {
		return 0
	}
	return len(b.subs[typ])
}

func (b *Bus) subscribed(typ Type, id uint64) bool {
	for _, s := range b.subs[typ] {
		if s.id == id {
			return true
		}
	}
	return false
}

func (b *Bus) remove(typ Type, id uint64) {
	subs := b.subs[typ]
	for i, s := range subs {
		if s.id == id {
			b.subs[typ] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[typ]) == 0 {
		delete(b.subs, typ)
	}
}

// Group collects subscriptions owned by one component so they can be
// detached together on teardown.
type Group struct {
	subs []Subscription
}

func (g *Group) Subscribe(b *Bus, typ Type, fn Handler) {
	if g == nil {
		return
	}
	g.subs = append(g.subs, b.Subscribe(typ, fn))
}

func (g *Group) Unsubscribe() {
	if g == nil {
		return
	}
	for _, s := range g.subs {
		s.Unsubscribe()
	}
	g.subs = nil
}
