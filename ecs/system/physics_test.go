package system

import (
	"testing"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corridor is an 8x5 room with solid borders and a closed door at (3,0).
func corridor() *levels.Level {
	walls := make([]int, 8*5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 8; x++ {
			if x == 0 || y == 0 || x == 7 || y == 4 {
				walls[y*8+x] = 2
			}
		}
	}
	walls[3] = 451
	return &levels.Level{
		Key:      "corridor",
		Width:    8,
		Height:   5,
		TileSize: 16,
		Passable: []int{454},
		Layers: []levels.LayerData{
			{Name: "floor", Tiles: make([]int, 8*5)},
			{Name: "walls", Physics: true, Tiles: walls},
		},
	}
}

func TestWallsStopThePlayer(t *testing.T) {
	f := newFixture(t)
	f.movePlayer(40, 40)
	ps := NewPhysicsSystem(f.env)
	defer ps.Close()
	ps.SetTilemap(levels.NewTilemap(corridor()))

	vel, _ := ecs.Get(f.w, f.player, component.VelocityComponent.Kind())
	for i := 0; i < 120; i++ {
		vel.X = 100
		ps.Update(f.w)
	}

	tr, _ := ecs.Get(f.w, f.player, component.TransformComponent.Kind())
	assert.Greater(t, tr.X, 90.0)
	assert.Less(t, tr.X, 106.0, "right wall starts at x=112")
	assert.InDelta(t, 40, tr.Y, 0.5)
}

func TestFrozenBodiesHoldStill(t *testing.T) {
	f := newFixture(t)
	ps := NewPhysicsSystem(f.env)
	defer ps.Close()

	vel, _ := ecs.Get(f.w, f.player, component.VelocityComponent.Kind())
	vel.X, vel.Frozen = 100, true
	for i := 0; i < 10; i++ {
		ps.Update(f.w)
	}

	tr, _ := ecs.Get(f.w, f.player, component.TransformComponent.Kind())
	assert.InDelta(t, 100, tr.X, 1e-9)
	assert.Equal(t, 100.0, vel.X, "drag does not act on frozen bodies")
}

func TestDoorEditsFollowIntoTheSpace(t *testing.T) {
	f := newFixture(t)
	ps := NewPhysicsSystem(f.env)
	defer ps.Close()

	m := levels.NewTilemap(corridor())
	ps.SetTilemap(m)
	closed := ps.Walls()
	require.Equal(t, 22, closed)

	require.Equal(t, 1, m.ReplaceByIndex("walls", 451, 454))
	assert.Equal(t, closed-1, ps.Walls())

	require.Equal(t, 1, m.ReplaceByIndex("walls", 454, 451))
	assert.Equal(t, closed, ps.Walls())
}

func TestDestroyedEntitiesLeaveTheSpace(t *testing.T) {
	f := newFixture(t)
	ps := NewPhysicsSystem(f.env)
	defer ps.Close()

	enemy := f.enemy("Skeleton", 60, 60)
	ps.Update(f.w)
	body, _ := ecs.Get(f.w, enemy, component.PhysicsBodyComponent.Kind())
	require.NotNil(t, body.Body)

	ecs.DestroyEntity(f.w, enemy)
	ps.Update(f.w)
	assert.Len(t, ps.entities, 1, "only the player remains")
}
