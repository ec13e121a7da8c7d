package system

import (
	"math"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
)

// aabb is a top-left anchored box.
type aabb struct {
	x, y, w, h float64
}

func centered(x, y, w, h float64) aabb {
	return aabb{x: x - w/2, y: y - h/2, w: w, h: h}
}

func intersects(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}

func (a aabb) overlaps(b aabb) bool {
	return intersects(a.x, a.y, a.w, a.h, b.x, b.y, b.w, b.h)
}

func (a aabb) inflate(m float64) aabb {
	return aabb{x: a.x - m, y: a.y - m, w: a.w + 2*m, h: a.h + 2*m}
}

func (a aabb) touchesCircle(cx, cy, r float64) bool {
	nx := math.Max(a.x, math.Min(cx, a.x+a.w))
	ny := math.Max(a.y, math.Min(cy, a.y+a.h))
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy <= r*r
}

func actorBounds(w *ecs.World, e ecs.Entity) (aabb, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return aabb{}, false
	}
	a, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	if !ok {
		return aabb{}, false
	}
	return centered(t.X, t.Y, a.Width, a.Height), true
}

// playerEntity returns the room's player.
func playerEntity(w *ecs.World) (ecs.Entity, *component.Player, bool) {
	e, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	return e, p, true
}

func position(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	return t.X, t.Y, true
}

// approach moves v toward zero by at most step.
func approach(v, step float64) float64 {
	if v > 0 {
		return math.Max(0, v-step)
	}
	return math.Min(0, v+step)
}

// faceAndAnimate orients an actor by horizontal velocity and picks run or
// idle by whether it is moving.
func faceAndAnimate(w *ecs.World, e ecs.Entity, actor *component.Actor, vel *component.Velocity) {
	if vel.X > 0 {
		actor.FacingLeft = false
	} else if vel.X < 0 {
		actor.FacingLeft = true
	}
	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok {
		return
	}
	if vel.X != 0 || vel.Y != 0 {
		anim.Play("run")
	} else {
		anim.Play("idle")
	}
}
