package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/hud"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/room"
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleDoor   = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	styleStairs = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHeart  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func (g *terminalGame) draw() {
	g.screen.Clear()

	switch {
	case g.err != nil:
		g.drawText(0, 0, styleText, "room failed to load: "+g.err.Error())
		g.drawText(0, 1, styleText, "Enter to retry, q to quit")
	case g.room != nil:
		g.drawTiles(g.room)
		g.drawEntities(g.room)
		rows := g.room.Tilemap().Height()
		if g.hud != nil {
			g.drawHUD(rows, g.hud)
		}
		if g.over {
			g.drawText(0, rows+1, styleText, "GAME OVER - Enter to play again, q to quit")
		} else {
			g.drawText(0, rows+1, styleText, fmt.Sprintf("%s  %s", g.room.Info().Name, g.room.State()))
		}
	}

	g.screen.Show()
}

func (g *terminalGame) drawTiles(r *room.Controller) {
	m := r.Tilemap()
	lvl := r.Level()
	doors := make(map[int]rune, len(lvl.Doors)*2)
	for _, d := range lvl.Doors {
		doors[d.Closed] = '+'
		doors[d.Open] = '\''
	}

	for _, layer := range m.Layers() {
		m.ForEachTile(layer.Name, func(t levels.Tile) {
			ch, style := '.', styleFloor
			switch {
			case lvl.ExitPlacedTile != 0 && t.Index == lvl.ExitPlacedTile:
				ch, style = '>', styleStairs
			case doors[t.Index] != 0:
				ch, style = doors[t.Index], styleDoor
			case layer.Physics:
				ch, style = '#', styleWall
			}
			g.screen.SetContent(t.X, t.Y, ch, nil, style)
		})
	}
}

func (g *terminalGame) drawEntities(r *room.Controller) {
	w := r.World()
	ts := float64(r.Tilemap().TileSize())
	put := func(x, y float64, ch rune, s component.Sprite) {
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(s.Color.R), int32(s.Color.G), int32(s.Color.B)))
		g.screen.SetContent(int(x/ts), int(y/ts), ch, nil, style)
	}

	ecs.ForEach3(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, _ *component.Hazard, t *component.Transform, s *component.Sprite) {
		put(t.X, t.Y, '^', *s)
	})
	ecs.ForEach3(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, _ *component.Pickup, t *component.Transform, s *component.Sprite) {
		put(t.X, t.Y, '$', *s)
	})
	ecs.ForEach3(w, component.ButtonComponent.Kind(), component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, b *component.Button, t *component.Transform, s *component.Sprite) {
		ch := 'o'
		if b.Active {
			ch = 'O'
		}
		put(t.X, t.Y, ch, *s)
	})
	ecs.ForEach3(w, component.WeaponComponent.Kind(), component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, wp *component.Weapon, t *component.Transform, s *component.Sprite) {
		if wp.Owner == 0 {
			put(t.X, t.Y, '/', *s)
		}
	})
	ecs.ForEach3(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, a *component.Actor, t *component.Transform, s *component.Sprite) {
		ch := 'N'
		switch a.Kind {
		case component.ActorPlayer:
			ch = '@'
		case component.ActorEnemy:
			ch = 'g'
			if a.State == component.StateStunned {
				ch = '*'
			}
		}
		if a.State == component.StateDead {
			ch = '%'
		}
		put(t.X, t.Y, ch, *s)
	})
}

func (g *terminalGame) drawHUD(row int, h *hud.HUD) {
	x := 0
	for _, heart := range h.Hearts() {
		ch := '.'
		switch heart {
		case hud.HeartFull:
			ch = '♥'
		case hud.HeartHalf:
			ch = '♡'
		}
		g.screen.SetContent(x, row, ch, nil, styleHeart)
		x++
	}
	g.drawText(x+2, row, styleText, fmt.Sprintf("Gold: %s  %s", h.GoldText(), h.ScoreText()))
}

func (g *terminalGame) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
