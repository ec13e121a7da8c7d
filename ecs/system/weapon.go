package system

import (
	"math"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
)

// Equip binds weapon to player. It only succeeds for a weapon lying in its
// default state while the player is empty-handed or holding a weapon that is
// not mid-swing. The previously held weapon is dropped.
func Equip(w *ecs.World, env *Env, player, weapon ecs.Entity) bool {
	wp, ok := ecs.Get(w, weapon, component.WeaponComponent.Kind())
	if !ok || wp.State != component.WeaponDefault {
		return false
	}
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return false
	}
	prev := ecs.Entity(p.Weapon)
	if prev != 0 {
		held, ok := ecs.Get(w, prev, component.WeaponComponent.Kind())
		if ok && held.State != component.WeaponEquipped {
			return false
		}
	}

	if prev != 0 {
		Unequip(w, env, prev)
	}
	wp.State = component.WeaponEquipped
	wp.Owner = uint64(player)
	p.Weapon = uint64(weapon)
	followOwner(w, weapon, wp)
	env.cue("weapon-equip")
	return true
}

// Unequip drops a held weapon at its owner's position.
func Unequip(w *ecs.World, env *Env, weapon ecs.Entity) bool {
	wp, ok := ecs.Get(w, weapon, component.WeaponComponent.Kind())
	if !ok {
		return false
	}
	if wp.State != component.WeaponEquipped && wp.State != component.WeaponActivated {
		return false
	}

	owner := ecs.Entity(wp.Owner)
	wp.SwingEnd.Cancel()
	followOwner(w, weapon, wp)
	wp.State = component.WeaponDropped
	wp.Owner = 0
	wp.Angle = 0
	if p, ok := ecs.Get(w, owner, component.PlayerComponent.Kind()); ok && ecs.Entity(p.Weapon) == weapon {
		p.Weapon = 0
	}
	env.cue("weapon-drop")
	return true
}

// Attack starts a swing: every enemy inside the swing reach is hit once,
// then after the swing and recovery time the weapon returns to Equipped with
// its handedness flipped.
func Attack(w *ecs.World, env *Env, weapon ecs.Entity) bool {
	wp, ok := ecs.Get(w, weapon, component.WeaponComponent.Kind())
	if !ok || wp.State != component.WeaponEquipped {
		return false
	}
	ox, oy, ok := position(w, ecs.Entity(wp.Owner))
	if !ok {
		return false
	}

	wp.State = component.WeaponActivated
	wp.SwingStart = w.Now()
	env.cue("weapon-swing")

	cx, cy, r := swingCircle(env, wp, ox, oy)
	var targets []ecs.Entity
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, _ *component.Enemy) {
		if b, ok := actorBounds(w, e); ok && b.touchesCircle(cx, cy, r) {
			targets = append(targets, e)
		}
	})
	for _, e := range targets {
		HitEnemy(w, env, e, ox, oy, wp.Damage, wp.Knockback)
	}

	wp.SwingEnd = w.After(weapon, env.Tuning.Swing()+env.Tuning.SwingRecover(), func() {
		cur, ok := ecs.Get(w, weapon, component.WeaponComponent.Kind())
		if !ok || cur.State != component.WeaponActivated {
			return
		}
		cur.Flipped = !cur.Flipped
		cur.State = component.WeaponEquipped
	})
	return true
}

// swingCircle is the area a swing reaches: a circle in front of the owner
// along the aim angle.
func swingCircle(env *Env, wp *component.Weapon, ox, oy float64) (float64, float64, float64) {
	reach := env.Tuning.SwingReach
	r := math.Max(wp.Width, wp.Height) / 2
	if r <= 0 {
		r = reach / 2
	}
	return ox + math.Cos(wp.Angle)*reach, oy + math.Sin(wp.Angle)*reach, r + reach/2
}

// SwingAngle is the drawn angle of a weapon: the aim angle, swept across the
// swing arc while Activated.
func SwingAngle(w *ecs.World, env *Env, wp *component.Weapon) float64 {
	if wp == nil {
		return 0
	}
	if wp.State != component.WeaponActivated {
		return wp.Angle
	}
	arc := env.Tuning.SwingArcDeg * math.Pi / 180
	progress := 1.0
	if d := env.Tuning.Swing(); d > 0 {
		progress = math.Min(1, float64(w.Now()-wp.SwingStart)/float64(d))
	}
	start := wp.Angle - arc/2
	if wp.Flipped {
		return start + arc*(1-progress)
	}
	return start + arc*progress
}

func followOwner(w *ecs.World, weapon ecs.Entity, wp *component.Weapon) {
	ox, oy, ok := position(w, ecs.Entity(wp.Owner))
	if !ok {
		return
	}
	if t, ok := ecs.Get(w, weapon, component.TransformComponent.Kind()); ok {
		t.X, t.Y = ox, oy
	}
}

// WeaponSystem runs pickup checks for weapons on the ground and keeps held
// weapons on their owner, aimed at the pointer.
type WeaponSystem struct {
	env *Env
}

func NewWeaponSystem(env *Env) *WeaponSystem { return &WeaponSystem{env: env} }

func (s *WeaponSystem) Update(w *ecs.World) {
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
	playerAlive := true
	if a, ok := ecs.Get(w, player, component.ActorComponent.Kind()); ok && a.State == component.StateDead {
		playerAlive = false
	}
	input, _ := ecs.Get(w, player, component.InputComponent.Kind())

	equipped := false
	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, wp *component.Weapon, t *component.Transform) {
		switch wp.State {
		case component.WeaponDefault:
			// One pickup per tick: the first weapon in spawn order wins.
			if equipped || !playerAlive {
				return
			}
			if centered(t.X, t.Y, wp.Width, wp.Height).overlaps(playerBox) {
				equipped = Equip(w, s.env, player, e)
			}
		case component.WeaponEquipped:
			followOwner(w, e, wp)
			if input != nil && ecs.Entity(wp.Owner) == player {
				px, py, _ := position(w, player)
				if input.AimX != px || input.AimY != py {
					wp.Angle = math.Atan2(input.AimY-py, input.AimX-px)
				}
			}
		case component.WeaponActivated:
			followOwner(w, e, wp)
		case component.WeaponDropped:
			if !centered(t.X, t.Y, wp.Width, wp.Height).overlaps(playerBox) {
				wp.State = component.WeaponDefault
			}
		}
	})
}
