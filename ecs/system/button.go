package system

import (
	"math"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/events"
)

// ButtonSystem reacts to player-activate: every button within range of the
// player toggles and raises activate-arena or deactivate-arena.
type ButtonSystem struct {
	env   *Env
	world *ecs.World
}

func NewButtonSystem(env *Env) *ButtonSystem { return &ButtonSystem{env: env} }

// Bind subscribes the system to the bus for world w. The group owns the
// subscription.
func (s *ButtonSystem) Bind(w *ecs.World, g *events.Group) {
	if s == nil || g == nil {
		return
	}
	s.world = w
	g.Subscribe(s.env.Bus, events.PlayerActivate, func(events.Event) { s.toggle() })
}

func (s *ButtonSystem) toggle() {
	w := s.world
	player, _, ok := playerEntity(w)
	if !ok {
		return
	}
	px, py, ok := position(w, player)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.ButtonComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Button, t *component.Transform) {
		if math.Hypot(t.X-px, t.Y-py) > b.Range {
			return
		}
		b.Active = !b.Active
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			if b.Active {
				anim.Play("open")
			} else {
				anim.Play("idle")
			}
		}
		if b.Active {
			s.env.publish(events.ActivateArena, 0)
		} else {
			s.env.publish(events.DeactivateArena, 0)
		}
	})
}
