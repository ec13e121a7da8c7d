package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/prefabs"
)

// PlayerData is what a player carries from room to room.
type PlayerData struct {
	Name     string
	Score    int
	Gold     int
	Lives    int
	MaxLives int
	Speed    float64
	Weapon   string
}

// NewPlayerData is the starting data of a fresh session.
func NewPlayerData(def prefabs.PlayerSpec) PlayerData {
	return PlayerData{
		Name:     def.Name,
		Score:    def.Stats.Score,
		Gold:     def.Stats.Gold,
		Lives:    def.Stats.Lives,
		MaxLives: def.Stats.MaxLives,
		Speed:    def.Stats.Speed,
		Weapon:   def.Weapon,
	}
}

// NewPlayer spawns the player at (x, y) from its definition and carried data.
// The weapon named in data is not spawned here.
func NewPlayer(w *ecs.World, store *prefabs.Store, tuning prefabs.TuningSpec, data PlayerData, x, y float64) (ecs.Entity, error) {
	def, ok := store.Player(data.Name)
	if !ok {
		return 0, fmt.Errorf("player: %q: %w", data.Name, prefabs.ErrNotFound)
	}

	b := newBuilder(w, "player")
	add(b, "player", component.PlayerComponent, &component.Player{
		Score:    data.Score,
		Gold:     data.Gold,
		Lives:    data.Lives,
		MaxLives: data.MaxLives,
		Speed:    data.Speed,
	})
	add(b, "actor", component.ActorComponent, &component.Actor{
		Kind:   component.ActorPlayer,
		Name:   def.Name,
		Width:  def.Size.Width,
		Height: def.Size.Height,
	})
	add(b, "transform", component.TransformComponent, &component.Transform{X: x, Y: y})
	add(b, "velocity", component.VelocityComponent, &component.Velocity{Drag: tuning.PlayerDrag})
	add(b, "input", component.InputComponent, &component.Input{AimX: x, AimY: y})
	add(b, "physics body", component.PhysicsBodyComponent, &component.PhysicsBody{Width: def.Size.Width, Height: def.Size.Height})
	add(b, "collision layer", component.CollisionLayerComponent, &component.CollisionLayer{
		Category: component.CategoryPlayer,
		Mask:     component.CategoryWall | component.CategoryNPC,
	})
	add(b, "animation", component.AnimationComponent, animationFrom(def.Sprite.Key, def.Animations))
	add(b, "sprite", component.SpriteComponent, spriteFrom(def.Sprite, LayerActors, color.RGBA{R: 220, G: 200, B: 170, A: 255}))
	return b.done()
}
