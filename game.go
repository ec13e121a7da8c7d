package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/ecs/entity"
	"github.com/milk9111/dungeon/events"
	"github.com/milk9111/dungeon/hud"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/prefabs"
	"github.com/milk9111/dungeon/room"
)

const (
	hudHeight     = 24
	defaultPlayer = "Knight"
)

type Config struct {
	Level string
	Debug bool
	Watch bool
	Mute  bool
}

type screenState int

const (
	statePlaying screenState = iota
	stateGameOver
	stateFailed
)

type Game struct {
	frames int
	debug  bool

	registry *levels.Registry
	store    *prefabs.Store
	tuning   prefabs.TuningSpec
	bus      *events.Bus
	sounds   *soundBoard
	watcher  *prefabs.Watcher

	startLevel string
	room       *room.Controller
	hud        *hud.HUD
	state      screenState
	failure    string
}

func NewGame(cfg Config) (*Game, error) {
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

	start := cfg.Level
	if start == "" {
		first, _ := registry.First()
		start = first.Key
	}

	g := &Game{
		debug:      cfg.Debug,
		registry:   registry,
		store:      store,
		tuning:     tuning,
		bus:        events.NewBus(),
		sounds:     newSoundBoard(cfg.Mute),
		startLevel: start,
	}
	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.DiskRoot, prefabs.DiskRoot+"/scripts")
		if err != nil {
			log.Printf("watch: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.newSession()
	return g, nil
}

// newSession starts a fresh run at the starting level.
func (g *Game) newSession() {
	data := entity.PlayerData{Name: defaultPlayer}
	if def, ok := g.store.Player(defaultPlayer); ok {
		data = entity.NewPlayerData(def)
	}
	g.enterRoom(g.startLevel, data, 1)
}

// enterRoom replaces the current room. A load error ends up on the "room
// failed to load" screen instead of crashing.
func (g *Game) enterRoom(key string, data entity.PlayerData, depth int) {
	if g.room != nil {
		g.room.Close()
		g.room = nil
	}
	if g.hud != nil {
		g.hud.Close()
		g.hud = nil
	}

	c, err := room.Load(room.Options{
		Level:    key,
		Registry: g.registry,
		Store:    g.store,
		Tuning:   g.tuning,
		Bus:      g.bus,
		Cues:     g.sounds,
		Player:   data,
		Depth:    depth,
	})
	if err != nil {
		log.Printf("room failed to load: %v", err)
		g.state = stateFailed
		g.failure = err.Error()
		return
	}
	g.room = c
	g.hud = hud.New(g.bus, data)
	g.state = statePlaying
}

func (g *Game) Update() error {
	g.frames++
	g.sounds.update()

	if g.watcher != nil {
		for _, name := range g.watcher.Apply(g.store) {
			log.Printf("watch: %s changed", name)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}

	if g.state != statePlaying {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.newSession()
		}
		return nil
	}

	px, py := g.playerPosition()
	g.room.SetInput(pollInput(px, py))
	g.room.Update(g.tuning.TickDuration())

	if g.room.GameOver() {
		g.state = stateGameOver
		return nil
	}
	if tr, ok := g.room.Transition(); ok {
		log.Printf("exit to %s (%s)", tr.Next.Name, tr.Next.Key)
		g.enterRoom(tr.Next.Key, tr.Player, tr.Depth)
	}
	return nil
}

func (g *Game) playerPosition() (float64, float64) {
	if g.room == nil {
		return 0, 0
	}
	t, ok := ecs.Get(g.room.World(), g.room.Player(), component.TransformComponent.Kind())
	if !ok {
		return 0, 0
	}
	return t.X, t.Y
}

// screenSize is the logical size: the room plus the HUD strip.
func (g *Game) screenSize() (int, int) {
	w, h := 25*16, 19*16
	if g.room != nil {
		m := g.room.Tilemap()
		w, h = m.Width()*m.TileSize(), m.Height()*m.TileSize()
	}
	return w, h + hudHeight
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w, h := g.screenSize()
	return float64(w), float64(h)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.room != nil {
		g.room.Close()
	}
	if g.hud != nil {
		g.hud.Close()
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) statusLine() string {
	return fmt.Sprintf("FPS: %.0f  %s  %s", ebiten.ActualFPS(), g.room.Info().Name, g.room.State())
}
