package entity

import (
	"image/color"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
)

var (
	coinColor   = color.RGBA{R: 240, G: 200, B: 40, A: 255}
	spikeColor  = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	buttonColor = color.RGBA{R: 150, G: 100, B: 50, A: 255}
)

// NewCoin spawns a coin worth value gold.
func NewCoin(w *ecs.World, value int, x, y float64) (ecs.Entity, error) {
	b := newBuilder(w, "coin")
	add(b, "pickup", component.PickupComponent, &component.Pickup{Kind: "coin", Value: value, Width: 8, Height: 8})
	add(b, "transform", component.TransformComponent, &component.Transform{X: x, Y: y})
	add(b, "animation", component.AnimationComponent, &component.Animation{
		Sprite: "coin",
		Defs: map[string]component.AnimationDef{
			"idle": {Type: "idle", Key: "coin", Start: 0, End: 3, FrameRate: 10, Loop: true},
		},
		Current: "idle",
	})
	add(b, "sprite", component.SpriteComponent, &component.Sprite{Key: "coin", Color: coinColor, Layer: LayerItems})
	return b.done()
}

// NewSpikes spawns a floor hazard covering one tile centered on (x, y).
func NewSpikes(w *ecs.World, damage int, size, x, y float64) (ecs.Entity, error) {
	b := newBuilder(w, "spikes")
	add(b, "hazard", component.HazardComponent, &component.Hazard{Width: size - 2, Height: size - 2, Damage: damage})
	add(b, "transform", component.TransformComponent, &component.Transform{X: x, Y: y})
	add(b, "animation", component.AnimationComponent, &component.Animation{
		Sprite: "floor_spikes",
		Defs: map[string]component.AnimationDef{
			"idle": {Type: "idle", Key: "floor_spikes", Start: 0, End: 3, FrameRate: 5, Loop: true},
		},
		Current: "idle",
	})
	add(b, "sprite", component.SpriteComponent, &component.Sprite{Key: "floor_spikes", Color: spikeColor, Layer: LayerFloor})
	return b.done()
}

// NewButton spawns an arena switch the player toggles from within rng.
func NewButton(w *ecs.World, rng, x, y float64) (ecs.Entity, error) {
	b := newBuilder(w, "button")
	add(b, "button", component.ButtonComponent, &component.Button{Range: rng})
	add(b, "transform", component.TransformComponent, &component.Transform{X: x, Y: y})
	add(b, "animation", component.AnimationComponent, &component.Animation{
		Sprite: "chest",
		Defs: map[string]component.AnimationDef{
			"idle": {Type: "idle", Key: "chest_closed", Start: 0, End: 0},
			"open": {Type: "open", Key: "chest_open", Start: 0, End: 2, FrameRate: 10},
		},
		Current: "idle",
	})
	add(b, "sprite", component.SpriteComponent, &component.Sprite{Key: "chest", Color: buttonColor, Layer: LayerItems})
	return b.done()
}
