package system

import (
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/events"
)

// PlayerSystem turns the player's input into velocity, attacks and
// activation requests.
type PlayerSystem struct {
	env *Env
}

func NewPlayerSystem(env *Env) *PlayerSystem { return &PlayerSystem{env: env} }

func (s *PlayerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	player, p, ok := playerEntity(w)
	if !ok {
		return
	}
	actor, ok := ecs.Get(w, player, component.ActorComponent.Kind())
	if !ok {
		return
	}
	vel, ok := ecs.Get(w, player, component.VelocityComponent.Kind())
	if !ok {
		return
	}
	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	if input == nil {
		input = &component.Input{}
	}
	// Edges are consumed this tick whatever the state.
	attack, activate := input.Attack, input.Activate
	input.Attack, input.Activate = false, false

	switch actor.State {
	case component.StateDead:
		return
	case component.StateDefault:
		if p.InputDisabled {
			vel.X, vel.Y = 0, 0
			break
		}
		vel.X = axis(input.MoveX) * p.Speed
		vel.Y = axis(input.MoveY) * p.Speed
		if attack && p.Weapon != 0 {
			Attack(w, s.env, ecs.Entity(p.Weapon))
		}
		if activate {
			s.env.publish(events.PlayerActivate, 0)
		}
	}

	faceAndAnimate(w, player, actor, vel)
}

// axis maps held-key state to -1, 0 or 1.
func axis(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
