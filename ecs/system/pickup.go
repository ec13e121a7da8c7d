package system

import (
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
)

type PickupSystem struct {
	env *Env
}

func NewPickupSystem(env *Env) *PickupSystem { return &PickupSystem{env: env} }

func (s *PickupSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	player, _, ok := playerEntity(w)
	if !ok {
		return
	}
	if a, ok := ecs.Get(w, player, component.ActorComponent.Kind()); !ok || a.State == component.StateDead {
		return
	}
	playerBox, ok := actorBounds(w, player)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup, t *component.Transform) {
		if !centered(t.X, t.Y, pickup.Width, pickup.Height).overlaps(playerBox) {
			return
		}
		s.env.cue(pickup.Kind)
		AddGold(w, s.env, player, pickup.Value)
		ecs.DestroyEntity(w, e)
	})
}
