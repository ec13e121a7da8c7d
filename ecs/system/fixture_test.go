package system

import (
	"testing"
	"time"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/ecs/entity"
	"github.com/milk9111/dungeon/events"
	"github.com/milk9111/dungeon/prefabs"
	"github.com/stretchr/testify/require"
)

type recordedCues struct {
	played []string
	music  []string
}

func (c *recordedCues) Play(name string)      { c.played = append(c.played, name) }
func (c *recordedCues) PlayMusic(name string) { c.music = append(c.music, name) }

func (c *recordedCues) count(name string) int {
	n := 0
	for _, p := range c.played {
		if p == name {
			n++
		}
	}
	return n
}

func idleRun(prefix string) []prefabs.AnimationSpec {
	return []prefabs.AnimationSpec{
		{Type: "idle", Key: prefix + "_idle", End: 3, FrameRate: 8, Loop: true},
		{Type: "run", Key: prefix + "_run", End: 3, FrameRate: 10, Loop: true},
		{Type: "hit", Key: prefix + "_hit"},
	}
}

func testStore(t *testing.T) *prefabs.Store {
	t.Helper()
	store, err := prefabs.NewStore(prefabs.DefinitionsSpec{
		Players: []prefabs.PlayerSpec{{
			EntitySpec: prefabs.EntitySpec{Name: "Knight", Type: "knight", Animations: idleRun("knight"), Size: prefabs.SizeSpec{Width: 14, Height: 18}},
			Weapon:     "Sword",
			Stats:      prefabs.PlayerStatsSpec{Lives: 6, MaxLives: 6, Speed: 100},
		}},
		Enemies: []prefabs.EnemySpec{
			{
				EntitySpec: prefabs.EntitySpec{Name: "Skeleton", Type: "undead", Animations: idleRun("skelet"), Size: prefabs.SizeSpec{Width: 12, Height: 14}},
				Value:      100,
				Stats:      prefabs.EnemyStatsSpec{Health: 20, Speed: 40, Damage: 1, Knockback: 2},
			},
			{
				EntitySpec: prefabs.EntitySpec{Name: "Ogre", Type: "orc", Animations: idleRun("ogre"), Size: prefabs.SizeSpec{Width: 16, Height: 16}},
				Value:      300,
				Stats:      prefabs.EnemyStatsSpec{Health: 100, Speed: 30, Damage: 2, Knockback: 3},
			},
		},
		NPCs: []prefabs.NPCSpec{{
			EntitySpec: prefabs.EntitySpec{Name: "Shopkeeper", Animations: idleRun("shop")[:1], Size: prefabs.SizeSpec{Width: 14, Height: 18}},
		}},
		Weapons: []prefabs.WeaponSpec{
			{EntitySpec: prefabs.EntitySpec{Name: "Sword", Size: prefabs.SizeSpec{Width: 10, Height: 22}}, Stats: prefabs.WeaponStatsSpec{Damage: 50, Knockback: 5}},
			{EntitySpec: prefabs.EntitySpec{Name: "Axe", Size: prefabs.SizeSpec{Width: 9, Height: 21}}, Stats: prefabs.WeaponStatsSpec{Damage: 30, Knockback: 6}},
		},
	})
	require.NoError(t, err)
	return store
}

type fixture struct {
	t      *testing.T
	w      *ecs.World
	env    *Env
	cues   *recordedCues
	bus    *events.Bus
	store  *prefabs.Store
	player ecs.Entity
	events []events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:     t,
		w:     ecs.NewWorld(),
		cues:  &recordedCues{},
		bus:   events.NewBus(),
		store: testStore(t),
	}
	f.env = NewEnv(f.bus, f.cues, prefabs.DefaultTuning())
	for _, typ := range []events.Type{events.PlayerHealthChanged, events.PlayerScoreChanged, events.PlayerGoldChanged, events.GameOver, events.ActivateArena, events.DeactivateArena, events.PlayerActivate} {
		f.bus.Subscribe(typ, func(e events.Event) { f.events = append(f.events, e) })
	}

	def, _ := f.store.Player("Knight")
	player, err := entity.NewPlayer(f.w, f.store, f.env.Tuning, entity.NewPlayerData(def), 100, 100)
	require.NoError(t, err)
	f.player = player
	return f
}

func (f *fixture) enemy(name string, x, y float64) ecs.Entity {
	f.t.Helper()
	e, err := entity.NewEnemy(f.w, f.store, f.env.Tuning, name, x, y)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) weapon(name string, x, y float64) ecs.Entity {
	f.t.Helper()
	e, err := entity.NewWeapon(f.w, f.store, name, x, y)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) advance(d time.Duration) {
	f.w.AdvanceTimers(d)
}

func (f *fixture) actor(e ecs.Entity) *component.Actor {
	f.t.Helper()
	a, ok := ecs.Get(f.w, e, component.ActorComponent.Kind())
	require.True(f.t, ok, "entity %v has no actor", e)
	return a
}

func (f *fixture) playerData() *component.Player {
	f.t.Helper()
	p, ok := ecs.Get(f.w, f.player, component.PlayerComponent.Kind())
	require.True(f.t, ok)
	return p
}

func (f *fixture) weaponOf(e ecs.Entity) *component.Weapon {
	f.t.Helper()
	wp, ok := ecs.Get(f.w, e, component.WeaponComponent.Kind())
	require.True(f.t, ok)
	return wp
}

func (f *fixture) movePlayer(x, y float64) {
	t, _ := ecs.Get(f.w, f.player, component.TransformComponent.Kind())
	t.X, t.Y = x, y
}

func (f *fixture) eventsOf(typ events.Type) []int {
	var out []int
	for _, e := range f.events {
		if e.Type == typ {
			out = append(out, e.Value)
		}
	}
	return out
}

func (f *fixture) equippedCount() int {
	n := 0
	ecs.ForEach(f.w, component.WeaponComponent.Kind(), func(_ ecs.Entity, wp *component.Weapon) {
		if wp.State == component.WeaponEquipped || wp.State == component.WeaponActivated {
			n++
		}
	})
	return n
}
