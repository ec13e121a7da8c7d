package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/prefabs"
)

func NewEnemy(w *ecs.World, store *prefabs.Store, tuning prefabs.TuningSpec, name string, x, y float64) (ecs.Entity, error) {
	def, ok := store.Enemy(name)
	if !ok {
		return 0, fmt.Errorf("enemy: %q: %w", name, prefabs.ErrNotFound)
	}

	b := newBuilder(w, "enemy")
	add(b, "enemy", component.EnemyComponent, &component.Enemy{
		Type:      def.Type,
		Value:     def.Value,
		Health:    def.Stats.Health,
		MaxHealth: def.Stats.Health,
		Speed:     def.Stats.Speed,
		Damage:    max(def.Stats.Damage, 1),
		Knockback: def.Stats.Knockback,
	})
	add(b, "actor", component.ActorComponent, &component.Actor{
		Kind:   component.ActorEnemy,
		Name:   def.Name,
		Width:  def.Size.Width,
		Height: def.Size.Height,
	})
	add(b, "transform", component.TransformComponent, &component.Transform{X: x, Y: y})
	add(b, "velocity", component.VelocityComponent, &component.Velocity{Drag: tuning.EnemyDrag})
	add(b, "physics body", component.PhysicsBodyComponent, &component.PhysicsBody{Width: def.Size.Width, Height: def.Size.Height})
	add(b, "collision layer", component.CollisionLayerComponent, &component.CollisionLayer{
		Category: component.CategoryEnemy,
		Mask:     component.CategoryWall,
	})
	add(b, "animation", component.AnimationComponent, animationFrom(def.Sprite.Key, def.Animations))
	add(b, "sprite", component.SpriteComponent, spriteFrom(def.Sprite, LayerActors, color.RGBA{R: 200, G: 60, B: 60, A: 255}))
	return b.done()
}
