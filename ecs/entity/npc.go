package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/prefabs"
)

// NewNPC spawns an immovable actor that only plays its idle animation.
func NewNPC(w *ecs.World, store *prefabs.Store, name string, x, y float64) (ecs.Entity, error) {
	def, ok := store.NPC(name)
	if !ok {
		return 0, fmt.Errorf("npc: %q: %w", name, prefabs.ErrNotFound)
	}

	b := newBuilder(w, "npc")
	add(b, "npc tag", component.NPCTagComponent, &component.NPCTag{})
	add(b, "actor", component.ActorComponent, &component.Actor{
		Kind:   component.ActorNPC,
		Name:   def.Name,
		Width:  def.Size.Width,
		Height: def.Size.Height,
	})
	add(b, "transform", component.TransformComponent, &component.Transform{X: x, Y: y})
	add(b, "physics body", component.PhysicsBodyComponent, &component.PhysicsBody{Width: def.Size.Width, Height: def.Size.Height, Static: true})
	add(b, "collision layer", component.CollisionLayerComponent, &component.CollisionLayer{
		Category: component.CategoryNPC,
		Mask:     component.CategoryPlayer,
	})
	add(b, "animation", component.AnimationComponent, animationFrom(def.Sprite.Key, def.Animations))
	add(b, "sprite", component.SpriteComponent, spriteFrom(def.Sprite, LayerActors, color.RGBA{R: 80, G: 110, B: 170, A: 255}))
	return b.done()
}
