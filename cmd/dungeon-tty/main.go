// dungeon-tty runs the dungeon simulation in a terminal. One cell is one tile.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/ecs/entity"
	"github.com/milk9111/dungeon/events"
	"github.com/milk9111/dungeon/hud"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/prefabs"
	"github.com/milk9111/dungeon/room"
)

// Terminals only report key presses, so a direction counts as held for a
// short while after its last repeat.
const holdWindow = 200 * time.Millisecond

type terminalGame struct {
	screen   tcell.Screen
	registry *levels.Registry
	store    *prefabs.Store
	tuning   prefabs.TuningSpec
	bus      *events.Bus
	start    string

	room *room.Controller
	hud  *hud.HUD
	over bool
	err  error

	held     map[rune]time.Time
	attack   bool
	activate bool
	aimX     float64
	aimY     float64
}

// beeper rings the terminal bell for the louder cues.
type beeper struct{ screen tcell.Screen }

func (b beeper) Play(name string) {
	switch name {
	case "player-hit", "door-open", "stairs-open":
		_ = b.screen.Beep()
	}
}

func (b beeper) PlayMusic(string) {}

func main() {
	levelName := flag.String("level", "", "level key in levels/registry.json (default: first level)")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	g, err := newTerminalGame(*levelName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	g.run()
}

func newTerminalGame(start string) (*terminalGame, error) {
	registry, err := levels.LoadRegistry()
	if err != nil {
		return nil, err
	}
	store, err := prefabs.LoadStore()
	if err != nil {
		return nil, err
	}
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return nil, err
	}
	if start == "" {
		first, _ := registry.First()
		start = first.Key
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	g := &terminalGame{
		screen:   screen,
		registry: registry,
		store:    store,
		tuning:   tuning,
		bus:      events.NewBus(),
		start:    start,
		held:     make(map[rune]time.Time),
		aimX:     1,
	}
	g.newSession()
	return g, nil
}

func (g *terminalGame) newSession() {
	data := entity.PlayerData{Name: "Knight"}
	if def, ok := g.store.Player("Knight"); ok {
		data = entity.NewPlayerData(def)
	}
	g.over = false
	g.enterRoom(g.start, data, 1)
}

func (g *terminalGame) enterRoom(key string, data entity.PlayerData, depth int) {
	g.closeRoom()
	g.room, g.err = room.Load(room.Options{
		Level:    key,
		Registry: g.registry,
		Store:    g.store,
		Tuning:   g.tuning,
		Bus:      g.bus,
		Cues:     beeper{screen: g.screen},
		Player:   data,
		Depth:    depth,
	})
	if g.err != nil {
		log.Printf("room failed to load: %v", g.err)
		return
	}
	g.hud = hud.New(g.bus, data)
}

func (g *terminalGame) closeRoom() {
	if g.room != nil {
		g.room.Close()
		g.room = nil
	}
	if g.hud != nil {
		g.hud.Close()
		g.hud = nil
	}
}

func (g *terminalGame) run() {
	ticker := time.NewTicker(g.tuning.TickDuration())
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			g.update(now)
			g.draw()
		}
	}
}

func (g *terminalGame) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			g.press('w')
		case tcell.KeyDown:
			g.press('s')
		case tcell.KeyLeft:
			g.press('a')
		case tcell.KeyRight:
			g.press('d')
		case tcell.KeyEnter:
			if g.over || g.err != nil {
				g.newSession()
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'w', 'a', 's', 'd':
				g.press(ev.Rune())
			case ' ':
				g.attack = true
			case 'e':
				g.activate = true
			}
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *terminalGame) press(r rune) {
	g.held[r] = time.Now()
}

func (g *terminalGame) isHeld(r rune, now time.Time) bool {
	at, ok := g.held[r]
	return ok && now.Sub(at) < holdWindow
}

func (g *terminalGame) update(now time.Time) {
	if g.room == nil || g.over {
		return
	}

	var in component.Input
	if g.isHeld('a', now) {
		in.MoveX--
	}
	if g.isHeld('d', now) {
		in.MoveX++
	}
	if g.isHeld('w', now) {
		in.MoveY--
	}
	if g.isHeld('s', now) {
		in.MoveY++
	}
	if in.MoveX != 0 || in.MoveY != 0 {
		g.aimX, g.aimY = in.MoveX, in.MoveY
	}

	// Aim a tile away from the player in the last direction moved.
	px, py := g.playerPosition()
	ts := float64(g.room.Tilemap().TileSize())
	in.AimX, in.AimY = px+g.aimX*ts, py+g.aimY*ts
	in.Attack, in.Activate = g.attack, g.activate
	g.attack, g.activate = false, false

	g.room.SetInput(in)
	g.room.Update(g.tuning.TickDuration())

	if g.room.GameOver() {
		g.over = true
		return
	}
	if tr, ok := g.room.Transition(); ok {
		log.Printf("exit to %s (%s)", tr.Next.Name, tr.Next.Key)
		g.enterRoom(tr.Next.Key, tr.Player, tr.Depth)
	}
}

func (g *terminalGame) playerPosition() (float64, float64) {
	t, ok := ecs.Get(g.room.World(), g.room.Player(), component.TransformComponent.Kind())
	if !ok {
		return 0, 0
	}
	return t.X, t.Y
}

func (g *terminalGame) cleanup() {
	g.closeRoom()
	g.screen.Fini()
}
