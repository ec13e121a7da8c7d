package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStoreEmbedded(t *testing.T) {
	store, err := LoadStore()
	require.NoError(t, err)

	p, ok := store.Player("Knight")
	require.True(t, ok)
	assert.Equal(t, 6, p.Stats.Lives)
	assert.Equal(t, 6, p.Stats.MaxLives)
	assert.Equal(t, 100.0, p.Stats.Speed)
	assert.Equal(t, "Sword", p.Weapon)

	e, ok := store.Enemy("Skeleton")
	require.True(t, ok)
	assert.Equal(t, "undead", e.Type)
	assert.Greater(t, e.Value, 0)

	w, ok := store.Weapon("Sword")
	require.True(t, ok)
	assert.Greater(t, w.Stats.Damage, 0)

	_, ok = store.NPC("Shopkeeper")
	assert.True(t, ok)
}

func TestLookupMiss(t *testing.T) {
	store, err := LoadStore()
	require.NoError(t, err)

	_, ok := store.Enemy("Dragon")
	assert.False(t, ok)
	_, ok = store.Weapon("Skeleton")
	assert.False(t, ok, "names are scoped per kind")

	var nilStore *Store
	_, ok = nilStore.Player("Knight")
	assert.False(t, ok)
}

func TestLookupReturnsCopies(t *testing.T) {
	store, err := LoadStore()
	require.NoError(t, err)

	e, _ := store.Enemy("Skeleton")
	e.Animations[0].Key = "mutated"
	e.Stats.Health = -1

	again, _ := store.Enemy("Skeleton")
	assert.NotEqual(t, "mutated", again.Animations[0].Key)
	assert.Greater(t, again.Stats.Health, 0)
}

func TestNewStoreValidation(t *testing.T) {
	idleRun := []AnimationSpec{{Type: "idle", Key: "i"}, {Type: "run", Key: "r"}}

	tests := []struct {
		name    string
		defs    DefinitionsSpec
		wantErr error
	}{
		{
			name: "valid",
			defs: DefinitionsSpec{
				Players: []PlayerSpec{{EntitySpec: EntitySpec{Name: "P", Animations: idleRun}, Weapon: "W"}},
				Weapons: []WeaponSpec{{EntitySpec: EntitySpec{Name: "W"}}},
			},
		},
		{
			name: "enemy_without_run",
			defs: DefinitionsSpec{
				Enemies: []EnemySpec{{EntitySpec: EntitySpec{Name: "E", Animations: idleRun[:1]}}},
			},
			wantErr: errAny,
		},
		{
			name: "npc_idle_only",
			defs: DefinitionsSpec{
				NPCs: []NPCSpec{{EntitySpec: EntitySpec{Name: "N", Animations: idleRun[:1]}}},
			},
		},
		{
			name: "duplicate_enemy",
			defs: DefinitionsSpec{
				Enemies: []EnemySpec{
					{EntitySpec: EntitySpec{Name: "E", Animations: idleRun}},
					{EntitySpec: EntitySpec{Name: "E", Animations: idleRun}},
				},
			},
			wantErr: errAny,
		},
		{
			name: "unknown_starting_weapon",
			defs: DefinitionsSpec{
				Players: []PlayerSpec{{EntitySpec: EntitySpec{Name: "P", Animations: idleRun}, Weapon: "Nope"}},
			},
			wantErr: ErrNotFound,
		},
		{
			name: "missing_name",
			defs: DefinitionsSpec{
				Weapons: []WeaponSpec{{}},
			},
			wantErr: errAny,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStore(tc.defs)
			switch tc.wantErr {
			case nil:
				assert.NoError(t, err)
			case errAny:
				assert.Error(t, err)
			default:
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			}
		})
	}
}

var errAny = errors.New("any error")

func TestReloadPrefersDiskCopy(t *testing.T) {
	store, err := LoadStore()
	require.NoError(t, err)

	dir := t.TempDir()
	prev := DiskRoot
	DiskRoot = dir
	t.Cleanup(func() { DiskRoot = prev })

	edited := []byte(`
players:
  - name: Knight
    animations: [{type: idle, key: i}, {type: run, key: r}]
    stats: {lives: 2, max_lives: 2, speed: 80}
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entities.yaml"), edited, 0o644))
	require.NoError(t, store.Reload())

	p, ok := store.Player("Knight")
	require.True(t, ok)
	assert.Equal(t, 2, p.Stats.Lives)
	_, ok = store.Enemy("Skeleton")
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "entities.yaml"), []byte("players: [{name: Knight}]"), 0o644))
	assert.Error(t, store.Reload())
	p, _ = store.Player("Knight")
	assert.Equal(t, 2, p.Stats.Lives, "failed reload keeps previous definitions")
}

func TestLoadTuning(t *testing.T) {
	tuning, err := LoadTuning()
	require.NoError(t, err)

	assert.Equal(t, DefaultTuning().Stun(), tuning.Stun())
	assert.Equal(t, 1000, tuning.StunMS)
	assert.Equal(t, 400, tuning.ClearDelayMS)
	assert.Equal(t, 500, tuning.CompletionBonus)
	assert.Equal(t, 300, tuning.SwingMS+tuning.SwingRecoverMS)
	assert.Equal(t, 240.0, tuning.SwingArcDeg)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"waves.tengo", "scripts/waves.tengo", "prefabs/scripts/waves.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "spawns")
	}
}

func TestAudioManifest(t *testing.T) {
	spec, err := LoadAudioSpec()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, c := range spec.Clips {
		names[c.Name] = true
	}
	for _, cue := range []string{"coin", "weapon-swing", "door-open", "undead-death", "dungeonMusic"} {
		assert.True(t, names[cue], cue)
	}
}
