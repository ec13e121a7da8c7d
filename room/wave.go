package room

import (
	"context"
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/looplab/fsm"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/ecs/system"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/prefabs"
)

// State is the room's progress through its wave.
type State string

const (
	StateDefault    State = "default"
	StateActiveWave State = "active_wave"
	StateCleared    State = "cleared"
)

const (
	eventWave  = "wave"
	eventClear = "clear"
)

func newRoomFSM(key string) *fsm.FSM {
	return fsm.NewFSM(
		string(StateDefault),
		fsm.Events{
			{Name: eventWave, Src: []string{string(StateDefault)}, Dst: string(StateActiveWave)},
			{Name: eventClear, Src: []string{string(StateActiveWave)}, Dst: string(StateCleared)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Printf("room: %s: %s -> %s", key, e.Src, e.Dst)
			},
		},
	)
}

func (c *Controller) State() State {
	return State(c.fsm.Current())
}

// StartWave seals the exit and spawns the wave. Only a room still in
// StateDefault reacts; a room gets one wave.
func (c *Controller) StartWave() {
	if c == nil || !c.active || !c.fsm.Can(eventWave) {
		return
	}
	if err := c.fsm.Event(context.Background(), eventWave); err != nil {
		return
	}
	c.closeDoors()
	n := c.spawnEnemies(c.waveSpawns())
	log.Printf("room: %s: wave started with %d enemies", c.info.Key, n)
}

func (c *Controller) waveSpawns() []levels.Object {
	objects := c.level.Objects[levels.LayerEnemies]
	if c.waves == nil {
		return objects
	}
	spawns, err := c.waves.run(c.info.Key, c.opts.Depth, objects)
	if err != nil {
		log.Printf("room: %s: %v, using the Enemies layer", c.info.Key, err)
		return objects
	}
	return spawns
}

// checkCleared moves an active wave with no enemies left to StateCleared and
// schedules the exit to open. The transition happens once per wave.
func (c *Controller) checkCleared() {
	if !c.fsm.Is(string(StateActiveWave)) || ecs.Count(c.world, component.EnemyComponent.Kind()) > 0 {
		return
	}
	if err := c.fsm.Event(context.Background(), eventClear); err != nil {
		return
	}
	c.world.After(0, c.opts.Tuning.ClearDelay(), c.openExit)
}

func (c *Controller) openExit() {
	if c.swapDoors(true) > 0 {
		c.cue("door-open")
	}
	system.AddScore(c.world, c.env, c.player, c.opts.Tuning.CompletionBonus)

	exit, ok := c.placeHiddenExit()
	if !ok && c.level.ExitTile != 0 {
		exit, ok = c.tilemap.FindByIndex(c.level.DoorLayer, c.level.ExitTile)
	}
	if !ok {
		log.Printf("room: %s: cleared without an exit tile", c.info.Key)
		return
	}
	c.tilemap.SetTileLocationCallback(exit.Layer, exit.X, exit.Y, func(levels.Tile) { c.exitLevel() })
	c.exit = exit
	c.exitArmed = true
}

func (c *Controller) placeHiddenExit() (levels.Tile, bool) {
	at, ok := c.level.FindObject(levels.LayerHidden, "Exit")
	if !ok || c.level.GroundLayer == "" || c.level.ExitPlacedTile == 0 {
		return levels.Tile{}, false
	}
	tile, ok := c.tilemap.PutTileAtWorldXY(c.level.GroundLayer, c.level.ExitPlacedTile, at.X, at.Y)
	if ok {
		c.cue("stairs-open")
	}
	return tile, ok
}

func (c *Controller) exitLevel() {
	if c.transition != nil {
		return
	}
	next, err := c.opts.Registry.Next(c.info.Key)
	if err != nil {
		log.Printf("room: %s: exit: %v", c.info.Key, err)
		return
	}
	c.disarmExit()
	c.transition = &Transition{Next: next, Player: c.Snapshot(), Depth: c.opts.Depth + 1}
	c.active = false
}

func (c *Controller) closeDoors() {
	c.disarmExit()
	if c.swapDoors(false) > 0 {
		c.cue("door-close")
	}
}

// swapDoors replaces every door tile with its open (or closed) counterpart
// and returns how many tiles changed.
func (c *Controller) swapDoors(open bool) int {
	n := 0
	for _, d := range c.level.Doors {
		from, to := d.Open, d.Closed
		if open {
			from, to = d.Closed, d.Open
		}
		n += c.tilemap.ReplaceByIndex(c.level.DoorLayer, from, to)
	}
	return n
}

func (c *Controller) disarmExit() {
	if !c.exitArmed {
		return
	}
	c.tilemap.ClearTileLocationCallback(c.exit.Layer, c.exit.X, c.exit.Y)
	c.exitArmed = false
}

func (c *Controller) cue(name string) {
	if c.env.Cues != nil {
		c.env.Cues.Play(name)
	}
}

// waveScript is a compiled tengo script that turns the Enemies layer into
// the wave's spawn list. Inputs: level, depth, objects. Output: spawns.
type waveScript struct {
	name     string
	compiled *tengo.Compiled
}

func loadWaveScript(name string) (*waveScript, error) {
	if name == "" {
		return nil, nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("wave script %s: %w", name, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("level", "")
	_ = script.Add("depth", 0)
	_ = script.Add("objects", []any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("wave script %s: %w", name, err)
	}
	return &waveScript{name: name, compiled: compiled}, nil
}

func (s *waveScript) run(level string, depth int, objects []levels.Object) ([]levels.Object, error) {
	in := make([]any, 0, len(objects))
	for _, o := range objects {
		in = append(in, map[string]any{"name": o.Name, "x": o.X, "y": o.Y})
	}

	compiled := s.compiled.Clone()
	if err := compiled.Set("level", level); err != nil {
		return nil, fmt.Errorf("wave script %s: %w", s.name, err)
	}
	if err := compiled.Set("depth", depth); err != nil {
		return nil, fmt.Errorf("wave script %s: %w", s.name, err)
	}
	if err := compiled.Set("objects", in); err != nil {
		return nil, fmt.Errorf("wave script %s: %w", s.name, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("wave script %s: %w", s.name, err)
	}
	if !compiled.IsDefined("spawns") {
		return nil, fmt.Errorf("wave script %s: spawns not defined", s.name)
	}

	var out []levels.Object
	for i, raw := range compiled.Get("spawns").Array() {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("wave script %s: spawn %d is %T, want a map", s.name, i, raw)
		}
		name, _ := m["name"].(string)
		x, okX := number(m["x"])
		y, okY := number(m["y"])
		if name == "" || !okX || !okY {
			return nil, fmt.Errorf("wave script %s: spawn %d needs name, x and y", s.name, i)
		}
		out = append(out, levels.Object{Name: name, X: x, Y: y})
	}
	return out, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
