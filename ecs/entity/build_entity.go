package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/prefabs"
)

// builder adds components to a fresh entity and destroys it again if any
// add fails, so a broken spawn never leaves a half-built entity behind.
type builder struct {
	w    *ecs.World
	e    ecs.Entity
	what string
	err  error
}

func newBuilder(w *ecs.World, what string) *builder {
	return &builder{w: w, e: ecs.CreateEntity(w), what: what}
}

func add[T any](b *builder, name string, h component.ComponentHandle[T], v *T) {
	if b.err != nil {
		return
	}
	if err := ecs.Add(b.w, b.e, h.Kind(), v); err != nil {
		b.err = fmt.Errorf("%s: add %s: %w", b.what, name, err)
	}
}

func (b *builder) done() (ecs.Entity, error) {
	if b.err != nil {
		ecs.DestroyEntity(b.w, b.e)
		return 0, b.err
	}
	return b.e, nil
}

func animationFrom(sprite string, specs []prefabs.AnimationSpec) *component.Animation {
	a := &component.Animation{
		Sprite: sprite,
		Defs:   make(map[string]component.AnimationDef, len(specs)),
	}
	for _, s := range specs {
		a.Defs[s.Type] = component.AnimationDef{
			Type:      s.Type,
			Key:       s.Key,
			Start:     s.Start,
			End:       s.End,
			FrameRate: s.FrameRate,
			Loop:      s.Loop,
		}
	}
	a.Play("idle")
	return a
}

func spriteFrom(s prefabs.SpriteSpec, layer int, fallback color.RGBA) *component.Sprite {
	return &component.Sprite{Key: s.Key, Color: s.Color.RGBA8(fallback), Layer: layer}
}

// Draw layers, back to front.
const (
	LayerFloor = iota
	LayerItems
	LayerActors
	LayerWeapons
)
