package system

import (
	"image/color"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/events"
)

// KnockbackVector is the impulse pushing a victim away from its attacker:
// the offset from attacker to victim scaled by force. The offset is not
// normalized, so closer hits push less.
func KnockbackVector(attackerX, attackerY, victimX, victimY, force float64) (float64, float64) {
	return (victimX - attackerX) * force, (victimY - attackerY) * force
}

// HitEnemy applies a hit from an attacker at (ax, ay) carrying damage and
// knockback. Stunned or dead enemies ignore it. Returns whether it landed.
func HitEnemy(w *ecs.World, env *Env, enemy ecs.Entity, ax, ay float64, damage int, knockback float64) bool {
	actor, ok := ecs.Get(w, enemy, component.ActorComponent.Kind())
	if !ok || actor.Kind != component.ActorEnemy {
		return false
	}
	if actor.State == component.StateStunned || actor.State == component.StateDead {
		return false
	}
	stats, ok := ecs.Get(w, enemy, component.EnemyComponent.Kind())
	if !ok {
		return false
	}

	env.cue(stats.Type + "-hit")
	stats.Health = max(stats.Health-damage, 0)
	if stats.Health == 0 {
		killEnemy(w, env, enemy, actor, stats)
		return true
	}

	stun(w, env, enemy, actor, ax, ay, knockback)
	return true
}

func killEnemy(w *ecs.World, env *Env, enemy ecs.Entity, actor *component.Actor, stats *component.Enemy) {
	actor.State = component.StateDead
	env.cue(stats.Type + "-death")
	if player, _, ok := playerEntity(w); ok {
		AddScore(w, env, player, stats.Value)
	}
	ecs.DestroyEntity(w, enemy)
}

// HitPlayer applies the player damage contract. Only a player in its
// default state takes damage; lives never drop below zero.
func HitPlayer(w *ecs.World, env *Env, player ecs.Entity, ax, ay float64, damage int, knockback float64) bool {
	actor, ok := ecs.Get(w, player, component.ActorComponent.Kind())
	if !ok || actor.State != component.StateDefault {
		return false
	}
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return false
	}

	env.cue("player-hit")
	p.Lives = max(p.Lives-damage, 0)
	env.publish(events.PlayerHealthChanged, p.Lives)
	if p.Lives == 0 {
		killPlayer(w, env, player, actor, p)
		return true
	}

	stun(w, env, player, actor, ax, ay, knockback)
	return true
}

func killPlayer(w *ecs.World, env *Env, player ecs.Entity, actor *component.Actor, p *component.Player) {
	actor.State = component.StateDead
	p.InputDisabled = true
	if vel, ok := ecs.Get(w, player, component.VelocityComponent.Kind()); ok {
		vel.X, vel.Y = 0, 0
	}
	if anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok {
		anim.Play("hit")
	}
	env.publish(events.GameOver, 0)
}

// stun enters Stunned with knockback and a flash; the recovery timer is
// owned by the victim so it dies with it.
func stun(w *ecs.World, env *Env, e ecs.Entity, actor *component.Actor, ax, ay, knockback float64) {
	actor.State = component.StateStunned

	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		if x, y, ok := position(w, e); ok {
			kx, ky := KnockbackVector(ax, ay, x, y, knockback)
			vel.X += kx
			vel.Y += ky
		}
		vel.Frozen = false
	}
	flash(w, env, e)

	recovery := w.After(e, env.Tuning.Stun(), func() {
		if a, ok := ecs.Get(w, e, component.ActorComponent.Kind()); ok && a.State == component.StateStunned {
			a.State = component.StateDefault
		}
		ecs.Remove(w, e, component.StunComponent.Kind())
	})
	if s, ok := ecs.Get(w, e, component.StunComponent.Kind()); ok {
		s.Recover.Cancel()
		s.Recover = recovery
		return
	}
	_ = ecs.Add(w, e, component.StunComponent.Kind(), &component.Stun{Recover: recovery})
}

var flashFallback = color.RGBA{R: 255, A: 255}

func flash(w *ecs.World, env *Env, e ecs.Entity) {
	if f, ok := ecs.Get(w, e, component.FlashComponent.Kind()); ok {
		f.Clear.Cancel()
	}
	f := &component.Flash{Tint: env.Tuning.FlashColor.RGBA8(flashFallback)}
	f.Clear = w.After(e, env.Tuning.Flash(), func() {
		ecs.Remove(w, e, component.FlashComponent.Kind())
	})
	_ = ecs.Add(w, e, component.FlashComponent.Kind(), f)
}

// AddScore increases the player's score. Non-positive amounts are ignored
// so the score never goes down.
func AddScore(w *ecs.World, env *Env, player ecs.Entity, amount int) {
	if amount <= 0 {
		return
	}
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	p.Score += amount
	env.publish(events.PlayerScoreChanged, p.Score)
}

// AddGold increases the player's gold. Non-positive amounts are ignored.
func AddGold(w *ecs.World, env *Env, player ecs.Entity, amount int) {
	if amount <= 0 {
		return
	}
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	p.Gold += amount
	env.publish(events.PlayerGoldChanged, p.Gold)
}
