package system

import (
	"math"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
)

// EnemySystem drives every enemy: chase the player, or stand and attack while
// touching it.
type EnemySystem struct {
	env *Env
}

func NewEnemySystem(env *Env) *EnemySystem { return &EnemySystem{env: env} }

func (s *EnemySystem) Update(w *ecs.World) {
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
	px, py, _ := position(w, player)
	margin := s.env.Tuning.ContactMargin

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.ActorComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, stats *component.Enemy, actor *component.Actor, vel *component.Velocity) {
		switch actor.State {
		case component.StateStunned, component.StateDead:
			return
		}

		box, ok := actorBounds(w, e)
		if !ok {
			return
		}
		if box.inflate(margin).overlaps(playerBox) {
			actor.State = component.StateAttacking
		} else {
			actor.State = component.StateDefault
		}

		switch actor.State {
		case component.StateDefault:
			vel.Frozen = false
			ex, ey, _ := position(w, e)
			vel.X, vel.Y = steer(ex, ey, px, py, stats.Speed)
			faceAndAnimate(w, e, actor, vel)
		case component.StateAttacking:
			vel.Frozen = true
			vel.X, vel.Y = 0, 0
			faceAndAnimate(w, e, actor, vel)
			ex, ey, _ := position(w, e)
			HitPlayer(w, s.env, player, ex, ey, stats.Damage, stats.Knockback)
		}
	})
}

// steer returns a velocity of magnitude speed from (x, y) toward (tx, ty).
func steer(x, y, tx, ty, speed float64) (float64, float64) {
	dx, dy := tx-x, ty-y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return 0, 0
	}
	return dx / d * speed, dy / d * speed
}
