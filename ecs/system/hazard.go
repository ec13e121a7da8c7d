package system

import (
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
)

// HazardSystem hurts the player while it stands on a hazard. The stun window
// of the damage contract keeps a hazard from hitting every tick.
type HazardSystem struct {
	env *Env
}

func NewHazardSystem(env *Env) *HazardSystem { return &HazardSystem{env: env} }

func (s *HazardSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	player, _, ok := playerEntity(w)
	if !ok {
		return
	}
	playerBox, ok := actorBounds(w, player)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, h *component.Hazard, t *component.Transform) {
		if !centered(t.X, t.Y, h.Width, h.Height).overlaps(playerBox) {
			return
		}
		HitPlayer(w, s.env, player, t.X, t.Y, h.Damage, 0)
	})
}
