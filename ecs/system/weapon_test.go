package system

import (
	"testing"
	"time"

	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickupFirstTouchWins(t *testing.T) {
	f := newFixture(t)
	sword := f.weapon("Sword", 100, 100)
	axe := f.weapon("Axe", 100, 100)
	sys := NewWeaponSystem(f.env)

	sys.Update(f.w)

	assert.Equal(t, component.WeaponEquipped, f.weaponOf(sword).State)
	assert.Equal(t, component.WeaponDefault, f.weaponOf(axe).State)
	assert.Equal(t, uint64(sword), f.playerData().Weapon)

	for i := 0; i < 10; i++ {
		sys.Update(f.w)
		require.LessOrEqual(t, f.equippedCount(), 1, "tick %d", i)
	}
}

func TestEquipSwapsAndDropsPrevious(t *testing.T) {
	f := newFixture(t)
	sword := f.weapon("Sword", 0, 0)
	axe := f.weapon("Axe", 0, 0)

	require.True(t, Equip(f.w, f.env, f.player, sword))
	require.True(t, Equip(f.w, f.env, f.player, axe))

	assert.Equal(t, component.WeaponDropped, f.weaponOf(sword).State)
	assert.Zero(t, f.weaponOf(sword).Owner)
	assert.Equal(t, component.WeaponEquipped, f.weaponOf(axe).State)
	assert.Equal(t, uint64(axe), f.playerData().Weapon)
	assert.Equal(t, 1, f.equippedCount())

	st, _ := ecs.Get(f.w, sword, component.TransformComponent.Kind())
	assert.Equal(t, 100.0, st.X, "dropped at the player's position")
	assert.Equal(t, 100.0, st.Y)
	assert.Equal(t, 1, f.cues.count("weapon-drop"))
}

func TestEquipRefusedMidSwing(t *testing.T) {
	f := newFixture(t)
	sword := f.weapon("Sword", 0, 0)
	axe := f.weapon("Axe", 100, 100)
	require.True(t, Equip(f.w, f.env, f.player, sword))
	require.True(t, Attack(f.w, f.env, sword))

	assert.False(t, Equip(f.w, f.env, f.player, axe))
	NewWeaponSystem(f.env).Update(f.w)
	assert.Equal(t, component.WeaponDefault, f.weaponOf(axe).State)
	assert.Equal(t, uint64(sword), f.playerData().Weapon)
}

func TestDroppedWeaponWaitsForPlayerToLeave(t *testing.T) {
	f := newFixture(t)
	sword := f.weapon("Sword", 0, 0)
	sys := NewWeaponSystem(f.env)
	require.True(t, Equip(f.w, f.env, f.player, sword))

	require.True(t, Unequip(f.w, f.env, sword))
	assert.Zero(t, f.playerData().Weapon)

	sys.Update(f.w)
	assert.Equal(t, component.WeaponDropped, f.weaponOf(sword).State, "no instant re-pickup")

	f.movePlayer(300, 300)
	sys.Update(f.w)
	assert.Equal(t, component.WeaponDefault, f.weaponOf(sword).State)

	f.movePlayer(100, 100)
	sys.Update(f.w)
	assert.Equal(t, component.WeaponEquipped, f.weaponOf(sword).State)
}

func TestAttackHitsEnemiesInReach(t *testing.T) {
	f := newFixture(t)
	sword := f.weapon("Sword", 0, 0)
	require.True(t, Equip(f.w, f.env, f.player, sword))
	f.weaponOf(sword).Angle = 0

	near := f.enemy("Ogre", 115, 100)
	far := f.enemy("Ogre", 220, 100)
	behind := f.enemy("Skeleton", 70, 100)

	require.True(t, Attack(f.w, f.env, sword))

	nearStats, _ := ecs.Get(f.w, near, component.EnemyComponent.Kind())
	farStats, _ := ecs.Get(f.w, far, component.EnemyComponent.Kind())
	assert.Equal(t, 50, nearStats.Health)
	assert.Equal(t, component.StateStunned, f.actor(near).State)
	assert.Equal(t, 100, farStats.Health)
	assert.True(t, ecs.IsAlive(f.w, behind))
	assert.Equal(t, 1, f.cues.count("weapon-swing"))
}

func TestSwingCycle(t *testing.T) {
	f := newFixture(t)
	sword := f.weapon("Sword", 0, 0)
	require.True(t, Equip(f.w, f.env, f.player, sword))

	require.True(t, Attack(f.w, f.env, sword))
	wp := f.weaponOf(sword)
	assert.Equal(t, component.WeaponActivated, wp.State)
	assert.False(t, Attack(f.w, f.env, sword), "no attack while swinging")

	f.advance(299 * time.Millisecond)
	assert.Equal(t, component.WeaponActivated, wp.State)
	f.advance(time.Millisecond)
	assert.Equal(t, component.WeaponEquipped, wp.State)
	assert.True(t, wp.Flipped)

	require.True(t, Attack(f.w, f.env, sword))
	f.advance(300 * time.Millisecond)
	assert.False(t, wp.Flipped, "handedness alternates every swing")
}

func TestSwingKillsWeakEnemy(t *testing.T) {
	f := newFixture(t)
	sword := f.weapon("Sword", 0, 0)
	require.True(t, Equip(f.w, f.env, f.player, sword))
	f.weaponOf(sword).Angle = 0
	skeleton := f.enemy("Skeleton", 112, 100)

	require.True(t, Attack(f.w, f.env, sword))

	assert.False(t, ecs.IsAlive(f.w, skeleton))
	assert.Equal(t, 100, f.playerData().Score)
}

func TestHeldWeaponTracksAim(t *testing.T) {
	f := newFixture(t)
	sword := f.weapon("Sword", 0, 0)
	require.True(t, Equip(f.w, f.env, f.player, sword))

	in, _ := ecs.Get(f.w, f.player, component.InputComponent.Kind())
	in.AimX, in.AimY = 100, 150
	f.movePlayer(100, 100)
	NewWeaponSystem(f.env).Update(f.w)

	wp := f.weaponOf(sword)
	assert.InDelta(t, 1.5708, wp.Angle, 1e-3)
	wt, _ := ecs.Get(f.w, sword, component.TransformComponent.Kind())
	assert.Equal(t, 100.0, wt.X)
}
