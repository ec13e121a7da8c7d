package room

import (
	"testing"
	"time"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/ecs/entity"
	"github.com/milk9111/dungeon/ecs/system"
	"github.com/milk9111/dungeon/events"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

type cueLog struct {
	played []string
	music  []string
}

func (c *cueLog) Play(name string)      { c.played = append(c.played, name) }
func (c *cueLog) PlayMusic(name string) { c.music = append(c.music, name) }

func (c *cueLog) count(name string) int {
	n := 0
	for _, p := range c.played {
		if p == name {
			n++
		}
	}
	return n
}

func testOptions(t *testing.T, level string) (Options, *cueLog) {
	t.Helper()
	registry, err := levels.LoadRegistry()
	require.NoError(t, err)
	store, err := prefabs.LoadStore()
	require.NoError(t, err)
	def, ok := store.Player("Knight")
	require.True(t, ok)

	cues := &cueLog{}
	return Options{
		Level:    level,
		Registry: registry,
		Store:    store,
		Tuning:   prefabs.DefaultTuning(),
		Bus:      events.NewBus(),
		Cues:     cues,
		Player:   entity.NewPlayerData(def),
		Depth:    1,
	}, cues
}

func load(t *testing.T, opts Options) *Controller {
	t.Helper()
	c, err := Load(opts)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func run(c *Controller, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		c.Update(frame)
	}
}

func enemies(c *Controller) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(c.world, component.EnemyComponent.Kind(), func(e ecs.Entity, _ *component.Enemy) {
		out = append(out, e)
	})
	return out
}

func killAll(c *Controller) {
	for _, e := range enemies(c) {
		system.HitEnemy(c.world, c.env, e, 0, 0, 1000, 0)
	}
}

func teleport(c *Controller, x, y float64) {
	t, _ := ecs.Get(c.world, c.player, component.TransformComponent.Kind())
	t.X, t.Y = x, y
	c.physics.Teleport(c.player, x, y)
}

func TestLoadRunsSetupInOrder(t *testing.T) {
	opts, cues := testOptions(t, "dungeon-1-1")
	c := load(t, opts)

	assert.Equal(t, []Step{StepMusic, StepMap, StepSpawn, StepCollision, StepEvents, StepFadeIn}, c.Steps())
	assert.Equal(t, []string{"dungeonMusic"}, cues.music)
	assert.Empty(t, cues.played, "setup plays no effects")
	assert.Equal(t, StateDefault, c.State())
	assert.Empty(t, enemies(c))
	assert.Equal(t, 1.0, c.Fade())

	_, ok := c.tilemap.FindByIndex("Below Player", 357)
	assert.False(t, ok, "spike tiles become hazard entities")
	assert.Equal(t, 3, ecs.Count(c.world, component.HazardComponent.Kind()))
	assert.Equal(t, 3, ecs.Count(c.world, component.PickupComponent.Kind()))
	assert.Equal(t, 1, ecs.Count(c.world, component.NPCTagComponent.Kind()))
	assert.Equal(t, "Sword", c.Snapshot().Weapon)

	run(c, time.Second)
	assert.Zero(t, c.Fade())
}

func TestWaveClearsOnceAndOpensTheExit(t *testing.T) {
	opts, cues := testOptions(t, "dungeon-1-1")
	c := load(t, opts)
	c.Update(frame)

	opts.Bus.Publish(events.ActivateArena, 0)
	require.Equal(t, StateActiveWave, c.State())
	require.Len(t, enemies(c), 2)

	opts.Bus.Publish(events.ActivateArena, 0)
	assert.Len(t, enemies(c), 2, "a room gets one wave")

	killAll(c)
	c.Update(frame)
	assert.Equal(t, StateCleared, c.State())
	_, open := c.tilemap.FindByIndex("Walls Below", 486)
	assert.False(t, open, "doors wait for the clear delay")

	run(c, 500*time.Millisecond)
	exit, open := c.tilemap.FindByIndex("Walls Below", 486)
	require.True(t, open)
	assert.Equal(t, 1, cues.count("door-open"))
	assert.Equal(t, 650, c.Snapshot().Score)

	run(c, time.Second)
	assert.Equal(t, 1, cues.count("door-open"))
	assert.Equal(t, 650, c.Snapshot().Score)
	assert.Equal(t, StateCleared, c.State())

	teleport(c, 200, 24)
	require.Equal(t, 12, exit.X)
	require.Equal(t, 1, exit.Y)
	c.Update(frame)

	tr, ok := c.Transition()
	require.True(t, ok)
	assert.Equal(t, "dungeon-1-2", tr.Next.Key)
	assert.Equal(t, 2, tr.Depth)
	assert.Equal(t, entity.PlayerData{
		Name:     "Knight",
		Score:    650,
		Lives:    6,
		MaxLives: 6,
		Speed:    100,
		Weapon:   "Sword",
	}, tr.Player)
}

func TestButtonStartsTheWave(t *testing.T) {
	opts, _ := testOptions(t, "dungeon-1-1")
	c := load(t, opts)
	c.Update(frame)

	teleport(c, 200, 205)
	c.SetInput(component.Input{Activate: true})
	c.Update(frame)

	assert.Equal(t, StateActiveWave, c.State())
	assert.Len(t, enemies(c), 2)
}

func TestCarriedDataRoundTrips(t *testing.T) {
	opts, _ := testOptions(t, "dungeon-1-2")
	opts.Player.Score = 1234
	opts.Player.Gold = 7
	opts.Player.Lives = 3
	opts.Player.Weapon = "Axe"
	c := load(t, opts)

	assert.Equal(t, opts.Player, c.Snapshot())

	opts.Player.Weapon = ""
	bare := load(t, opts)
	assert.Equal(t, opts.Player, bare.Snapshot())
}

func TestAutoWaveRoomRevealsHiddenExit(t *testing.T) {
	opts, cues := testOptions(t, "dungeon-1-2")
	c := load(t, opts)

	assert.Equal(t, StateActiveWave, c.State())
	assert.Len(t, enemies(c), 3)
	assert.Empty(t, cues.played)

	c.Update(frame)
	killAll(c)
	run(c, 600*time.Millisecond)

	assert.Equal(t, StateCleared, c.State())
	stairs, ok := c.tilemap.TileAt("Below Player", 22, 9)
	require.True(t, ok)
	assert.Equal(t, 358, stairs.Index)
	assert.Equal(t, 1, cues.count("stairs-open"))
	assert.Zero(t, cues.count("door-open"))

	teleport(c, 360, 152)
	c.Update(frame)
	tr, ok := c.Transition()
	require.True(t, ok)
	assert.Equal(t, "dungeon-1-1", tr.Next.Key)
}

func TestGameOverDeactivatesTheRoom(t *testing.T) {
	opts, _ := testOptions(t, "dungeon-1-1")
	opts.Player.Lives = 1
	c := load(t, opts)

	system.HitPlayer(c.world, c.env, c.player, 0, 0, 1, 0)
	require.True(t, c.GameOver())

	fired := false
	c.world.After(0, time.Millisecond, func() { fired = true })
	c.Update(frame)
	assert.False(t, fired)
}

func TestCloseReleasesTheRoom(t *testing.T) {
	opts, _ := testOptions(t, "dungeon-1-1")
	c, err := Load(opts)
	require.NoError(t, err)

	c.StartWave()
	c.Update(frame)
	killAll(c)
	c.Update(frame)
	require.NotZero(t, c.world.PendingTimers())

	c.Close()
	c.Close()

	assert.Zero(t, c.world.PendingTimers())
	assert.Zero(t, opts.Bus.Subscribers(events.ActivateArena))
	assert.Zero(t, opts.Bus.Subscribers(events.PlayerActivate))
	assert.Zero(t, opts.Bus.Subscribers(events.GameOver))
	assert.Zero(t, c.physics.Walls())
}

func TestLoadFailures(t *testing.T) {
	t.Run("unknown_level", func(t *testing.T) {
		opts, _ := testOptions(t, "nowhere")
		_, err := Load(opts)
		assert.ErrorIs(t, err, levels.ErrUnknownLevel)
	})
	t.Run("unknown_player", func(t *testing.T) {
		opts, _ := testOptions(t, "dungeon-1-1")
		opts.Player.Name = "Nobody"
		_, err := Load(opts)
		assert.ErrorIs(t, err, prefabs.ErrNotFound)
	})
}

func TestMissingDefinitionsAreSkipped(t *testing.T) {
	defs, err := prefabs.LoadSpec[prefabs.DefinitionsSpec]("entities.yaml")
	require.NoError(t, err)
	var kept []prefabs.EnemySpec
	for _, e := range defs.Enemies {
		if e.Name != "Goblin" {
			kept = append(kept, e)
		}
	}
	defs.Enemies = kept
	defs.NPCs = nil
	store, err := prefabs.NewStore(defs)
	require.NoError(t, err)

	opts, _ := testOptions(t, "dungeon-1-1")
	opts.Store = store
	c := load(t, opts)
	assert.Zero(t, ecs.Count(c.world, component.NPCTagComponent.Kind()))

	c.StartWave()
	assert.Len(t, enemies(c), 1)

	killAll(c)
	c.Update(frame)
	assert.Equal(t, StateCleared, c.State())
}
