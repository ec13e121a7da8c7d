package system

import (
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
)

// AnimationSystem advances the current frame of every animation.
type AnimationSystem struct {
	env *Env
}

func NewAnimationSystem(env *Env) *AnimationSystem { return &AnimationSystem{env: env} }

func (s *AnimationSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := s.env.dt()
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, a *component.Animation) {
		def, ok := a.Defs[a.Current]
		if !ok {
			return
		}
		a.Time += dt
		a.Frame = frameAt(def, a.Time)
	})
}

func frameAt(def component.AnimationDef, t float64) int {
	count := def.End - def.Start + 1
	if count <= 1 || def.FrameRate <= 0 {
		return def.Start
	}
	n := int(t * def.FrameRate)
	if def.Loop {
		return def.Start + n%count
	}
	return def.Start + min(n, count-1)
}
