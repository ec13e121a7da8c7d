package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/prefabs"
)

// NewWeapon spawns a weapon lying on the ground at (x, y).
func NewWeapon(w *ecs.World, store *prefabs.Store, name string, x, y float64) (ecs.Entity, error) {
	def, ok := store.Weapon(name)
	if !ok {
		return 0, fmt.Errorf("weapon: %q: %w", name, prefabs.ErrNotFound)
	}

	b := newBuilder(w, "weapon")
	add(b, "weapon", component.WeaponComponent, &component.Weapon{
		Name:      def.Name,
		Damage:    def.Stats.Damage,
		Knockback: def.Stats.Knockback,
		Width:     def.Size.Width,
		Height:    def.Size.Height,
	})
	add(b, "transform", component.TransformComponent, &component.Transform{X: x, Y: y})
	add(b, "sprite", component.SpriteComponent, spriteFrom(def.Sprite, LayerWeapons, color.RGBA{R: 190, G: 190, B: 200, A: 255}))
	return b.done()
}
