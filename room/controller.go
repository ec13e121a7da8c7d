// Package room runs one room of the dungeon: it builds the room from a level
// and the definitions store, ticks the simulation, gates the exit behind the
// enemy wave and hands the player's data to the next room.
package room

import (
	"fmt"
	"log"
	"time"

	"github.com/looplab/fsm"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/ecs/entity"
	"github.com/milk9111/dungeon/ecs/system"
	"github.com/milk9111/dungeon/events"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/prefabs"
)

// Options describe the room to build.
type Options struct {
	Level    string
	Registry *levels.Registry
	Store    *prefabs.Store
	Tuning   prefabs.TuningSpec
	Bus      *events.Bus
	Cues     system.Cues
	Player   entity.PlayerData
	// Depth counts the rooms entered this run, starting at 1.
	Depth int
}

// Step is one stage of room setup, in the order Load performs them.
type Step string

const (
	StepMusic     Step = "music"
	StepMap       Step = "map"
	StepSpawn     Step = "spawn"
	StepCollision Step = "collision"
	StepEvents    Step = "events"
	StepFadeIn    Step = "fade-in"
)

// Transition is the result of walking onto the armed exit.
type Transition struct {
	Next   levels.Info
	Player entity.PlayerData
	Depth  int
}

type Controller struct {
	opts  Options
	info  levels.Info
	level *levels.Level

	world     *ecs.World
	tilemap   *levels.Tilemap
	env       *system.Env
	physics   *system.PhysicsSystem
	buttons   *system.ButtonSystem
	scheduler *ecs.Scheduler
	subs      events.Group

	fsm   *fsm.FSM
	waves *waveScript

	player     ecs.Entity
	steps      []Step
	elapsed    time.Duration
	exit       levels.Tile
	exitArmed  bool
	transition *Transition
	gameOver   bool
	active     bool
	closed     bool
}

// Load builds the room named by opts.Level. Music starts first, then the
// map is built, entities spawn, collision is wired, events are subscribed
// and the fade-in begins. Unknown levels, broken level files, a broken wave
// script and a missing player definition fail the load; other missing
// definitions are logged and skipped.
func Load(opts Options) (*Controller, error) {
	if opts.Registry == nil || opts.Store == nil {
		return nil, fmt.Errorf("room: load %q: registry and store are required", opts.Level)
	}
	info, ok := opts.Registry.Get(opts.Level)
	if !ok {
		return nil, fmt.Errorf("room: load %q: %w", opts.Level, levels.ErrUnknownLevel)
	}
	level, err := opts.Registry.Load(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("room: load %q: %w", opts.Level, err)
	}
	waves, err := loadWaveScript(level.WaveScript)
	if err != nil {
		return nil, fmt.Errorf("room: load %q: %w", opts.Level, err)
	}
	if opts.Depth < 1 {
		opts.Depth = 1
	}

	c := &Controller{
		opts:   opts,
		info:   info,
		level:  level,
		world:  ecs.NewWorld(),
		fsm:    newRoomFSM(info.Key),
		waves:  waves,
		active: true,
	}
	// Setup is silent; cues are attached once the room is built.
	c.env = system.NewEnv(opts.Bus, nil, opts.Tuning)

	c.startMusic()
	c.buildMap()
	if err := c.spawn(); err != nil {
		c.world.Close()
		return nil, fmt.Errorf("room: load %q: %w", opts.Level, err)
	}
	c.wireCollision()
	c.subscribe()
	c.fadeIn()

	c.env.Cues = opts.Cues
	return c, nil
}

func (c *Controller) step(s Step) {
	c.steps = append(c.steps, s)
}

func (c *Controller) startMusic() {
	if c.opts.Cues != nil && c.info.Music != "" {
		c.opts.Cues.PlayMusic(c.info.Music)
	}
	c.step(StepMusic)
}

func (c *Controller) buildMap() {
	c.tilemap = levels.NewTilemap(c.level)
	c.step(StepMap)
}

func (c *Controller) wireCollision() {
	c.physics = system.NewPhysicsSystem(c.env)
	c.physics.SetTilemap(c.tilemap)
	c.buttons = system.NewButtonSystem(c.env)
	c.scheduler = ecs.NewScheduler(
		system.NewPlayerSystem(c.env),
		system.NewEnemySystem(c.env),
		system.NewWeaponSystem(c.env),
		system.NewPickupSystem(c.env),
		system.NewHazardSystem(c.env),
		c.physics,
		system.NewAnimationSystem(c.env),
	)
	c.step(StepCollision)
}

func (c *Controller) subscribe() {
	c.subs.Subscribe(c.opts.Bus, events.ActivateArena, func(events.Event) { c.StartWave() })
	c.subs.Subscribe(c.opts.Bus, events.DeactivateArena, func(events.Event) {
		log.Printf("room: %s: deactivate-arena ignored, a wave cannot be stopped", c.info.Key)
	})
	c.subs.Subscribe(c.opts.Bus, events.GameOver, func(events.Event) {
		c.gameOver = true
		c.active = false
	})
	c.buttons.Bind(c.world, &c.subs)
	c.step(StepEvents)
}

func (c *Controller) fadeIn() {
	c.elapsed = 0
	c.step(StepFadeIn)
}

// Update advances the room by dt: timers first, then player, enemies,
// weapons and the rest of the systems, then the room's own checks.
func (c *Controller) Update(dt time.Duration) {
	if c == nil || !c.active {
		return
	}
	c.elapsed += dt
	c.env.Dt = dt.Seconds()
	c.world.AdvanceTimers(dt)
	c.scheduler.Update(c.world)
	if !c.active {
		return
	}
	c.checkCleared()
	c.checkExit()
}

func (c *Controller) checkExit() {
	if !c.exitArmed {
		return
	}
	x, y, ok := c.playerPosition()
	if !ok {
		return
	}
	c.tilemap.TriggerAt(x, y)
}

// SetInput replaces the player's input for the next Update.
func (c *Controller) SetInput(in component.Input) {
	if c == nil {
		return
	}
	if cur, ok := ecs.Get(c.world, c.player, component.InputComponent.Kind()); ok {
		*cur = in
	}
}

// Snapshot is the player's carried data as of now.
func (c *Controller) Snapshot() entity.PlayerData {
	data := c.opts.Player
	p, ok := ecs.Get(c.world, c.player, component.PlayerComponent.Kind())
	if !ok {
		return data
	}
	data.Score = p.Score
	data.Gold = p.Gold
	data.Lives = p.Lives
	data.MaxLives = p.MaxLives
	data.Speed = p.Speed
	data.Weapon = ""
	if wp, ok := ecs.Get(c.world, ecs.Entity(p.Weapon), component.WeaponComponent.Kind()); ok {
		data.Weapon = wp.Name
	}
	return data
}

// Transition reports the pending level change, if the player reached the exit.
func (c *Controller) Transition() (Transition, bool) {
	if c == nil || c.transition == nil {
		return Transition{}, false
	}
	return *c.transition, true
}

func (c *Controller) GameOver() bool { return c != nil && c.gameOver }

// Steps lists the setup stages in the order they ran.
func (c *Controller) Steps() []Step {
	return append([]Step(nil), c.steps...)
}

// Fade is the opacity of the fade-in overlay, from 1 down to 0.
func (c *Controller) Fade() float64 {
	d := c.opts.Tuning.FadeIn()
	if d <= 0 || c.elapsed >= d {
		return 0
	}
	return 1 - float64(c.elapsed)/float64(d)
}

func (c *Controller) Info() levels.Info { return c.info }
func (c *Controller) World() *ecs.World { return c.world }
func (c *Controller) Tilemap() *levels.Tilemap { return c.tilemap }
func (c *Controller) Player() ecs.Entity { return c.player }
func (c *Controller) Physics() *system.PhysicsSystem { return c.physics }
func (c *Controller) Level() *levels.Level { return c.level }

// WeaponAngle is the angle a weapon is drawn at, mid-swing included.
func (c *Controller) WeaponAngle(wp *component.Weapon) float64 {
	return system.SwingAngle(c.world, c.env, wp)
}

func (c *Controller) playerPosition() (float64, float64, bool) {
	t, ok := ecs.Get(c.world, c.player, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	return t.X, t.Y, true
}

// Close tears the room down: subscriptions are dropped, every pending timer
// is cancelled and the physics space is emptied. Safe to call twice.
func (c *Controller) Close() {
	if c == nil || c.closed {
		return
	}
	c.closed = true
	c.active = false
	c.subs.Unsubscribe()
	c.tilemap.ClearTileLocationCallbacks()
	c.physics.Close()
	c.world.Close()
}
