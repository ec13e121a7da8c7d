package main

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/hud"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/room"
	"golang.org/x/image/colornames"
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	if g.room != nil {
		drawTiles(screen, g.room)
		drawEntities(screen, g.room)
		drawWeapons(screen, g.room)
		if g.debug {
			drawPhysicsDebug(screen, g.room.Physics().Space())
			drawActorStates(screen, g.room.World())
			ebitenutil.DebugPrint(screen, g.statusLine())
		}
		if fade := g.room.Fade(); fade > 0 {
			w, h := g.screenSize()
			vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{A: uint8(fade * 255)}, false)
		}
	}
	if g.hud != nil {
		drawHUD(screen, g.hud, g.screenSize)
	}

	switch g.state {
	case stateGameOver:
		drawBanner(screen, g.screenSize, "GAME OVER", "press Space to play again")
	case stateFailed:
		drawBanner(screen, g.screenSize, "room failed to load", g.failure)
	}
}

func drawTiles(screen *ebiten.Image, r *room.Controller) {
	m := r.Tilemap()
	lvl := r.Level()
	ts := float32(m.TileSize())

	closed := make(map[int]bool, len(lvl.Doors))
	open := make(map[int]bool, len(lvl.Doors))
	for _, d := range lvl.Doors {
		closed[d.Closed] = true
		open[d.Open] = true
	}

	for _, layer := range m.Layers() {
		m.ForEachTile(layer.Name, func(t levels.Tile) {
			var c color.Color
			switch {
			case lvl.ExitPlacedTile != 0 && t.Index == lvl.ExitPlacedTile:
				c = colornames.Gold
			case closed[t.Index]:
				c = colornames.Saddlebrown
			case open[t.Index]:
				c = colornames.Peru
			case layer.Physics:
				c = colornames.Dimgray
			default:
				c = colornames.Darkslategray
			}
			vector.DrawFilledRect(screen, float32(t.X)*ts, float32(t.Y)*ts, ts, ts, c, false)
		})
	}
}

type drawItem struct {
	layer int
	e     ecs.Entity
	x, y  float64
	w, h  float64
	c     color.Color
}

func drawEntities(screen *ebiten.Image, r *room.Controller) {
	w := r.World()
	var items []drawItem
	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, s *component.Sprite, t *component.Transform) {
		if ecs.Has(w, e, component.WeaponComponent.Kind()) {
			return
		}
		width, height := entitySize(w, e)
		items = append(items, drawItem{layer: s.Layer, e: e, x: t.X, y: t.Y, w: width, h: height, c: entityColor(w, e, s)})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	for _, it := range items {
		vector.DrawFilledRect(screen, float32(it.x-it.w/2), float32(it.y-it.h/2), float32(it.w), float32(it.h), it.c, false)
	}
}

func entitySize(w *ecs.World, e ecs.Entity) (float64, float64) {
	if a, ok := ecs.Get(w, e, component.ActorComponent.Kind()); ok {
		return a.Width, a.Height
	}
	if p, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok {
		return p.Width, p.Height
	}
	if h, ok := ecs.Get(w, e, component.HazardComponent.Kind()); ok {
		return h.Width, h.Height
	}
	return 12, 12
}

func entityColor(w *ecs.World, e ecs.Entity, s *component.Sprite) color.Color {
	if f, ok := ecs.Get(w, e, component.FlashComponent.Kind()); ok && f.On() {
		return f.Tint
	}
	if a, ok := ecs.Get(w, e, component.ActorComponent.Kind()); ok && a.State == component.StateDead {
		return colornames.Darkred
	}
	if b, ok := ecs.Get(w, e, component.ButtonComponent.Kind()); ok && b.Active {
		return colornames.Limegreen
	}
	// Animated items pulse between their frames.
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok && anim.Frame%2 == 1 && ecs.Has(w, e, component.PickupComponent.Kind()) {
		return colornames.Khaki
	}
	return s.Color
}

func drawWeapons(screen *ebiten.Image, r *room.Controller) {
	w := r.World()
	ecs.ForEach3(w, component.WeaponComponent.Kind(), component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, wp *component.Weapon, t *component.Transform, s *component.Sprite) {
		switch wp.State {
		case component.WeaponEquipped, component.WeaponActivated:
			angle := r.WeaponAngle(wp)
			length := wp.Height
			x0 := t.X + math.Cos(angle)*4
			y0 := t.Y + math.Sin(angle)*4
			x1 := t.X + math.Cos(angle)*length
			y1 := t.Y + math.Sin(angle)*length
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), float32(math.Max(2, wp.Width/3)), s.Color, false)
		default:
			vector.DrawFilledRect(screen, float32(t.X-wp.Width/2), float32(t.Y-wp.Height/2), float32(wp.Width), float32(wp.Height), s.Color, false)
		}
	})
}

func drawActorStates(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, a *component.Actor, t *component.Transform) {
		ebitenutil.DebugPrintAt(screen, a.State.String(), int(t.X-a.Width/2), int(t.Y-a.Height/2)-14)
	})
}

func drawHUD(screen *ebiten.Image, h *hud.HUD, size func() (int, int)) {
	w, sh := size()
	top := float32(sh - hudHeight)
	vector.DrawFilledRect(screen, 0, top, float32(w), hudHeight, colornames.Black, false)

	for i, heart := range h.Hearts() {
		x := float32(8 + i*14)
		y := top + 6
		vector.StrokeRect(screen, x, y, 12, 12, 1, colornames.Indianred, false)
		switch heart {
		case hud.HeartFull:
			vector.DrawFilledRect(screen, x, y, 12, 12, colornames.Red, false)
		case hud.HeartHalf:
			vector.DrawFilledRect(screen, x, y, 6, 12, colornames.Red, false)
		}
	}

	goldX := 8 + len(h.Hearts())*14 + 12
	vector.DrawFilledCircle(screen, float32(goldX+5), top+12, 5, colornames.Gold, false)
	ebitenutil.DebugPrintAt(screen, h.GoldText(), goldX+14, int(top)+4)

	score := h.ScoreText()
	ebitenutil.DebugPrintAt(screen, score, w-8-len(score)*6, int(top)+4)
}

func drawBanner(screen *ebiten.Image, size func() (int, int), title, detail string) {
	w, h := size()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{A: 180}, false)
	ebitenutil.DebugPrintAt(screen, title, (w-len(title)*6)/2, h/2-16)
	if detail != "" {
		ebitenutil.DebugPrintAt(screen, detail, max(4, (w-len(detail)*6)/2), h/2)
	}
}
