package prefabs

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when a definition name has no entry.
var ErrNotFound = errors.New("prefabs: definition not found")

const definitionsFile = "entities.yaml"

// Store is the name-keyed definition lookup. Lookups return copies so
// instances never share mutable data with the store.
type Store struct {
	mu      sync.RWMutex
	players map[string]PlayerSpec
	enemies map[string]EnemySpec
	npcs    map[string]NPCSpec
	weapons map[string]WeaponSpec
}

// LoadStore reads entities.yaml (disk copy first, then the embedded one).
func LoadStore() (*Store, error) {
	defs, err := LoadSpec[DefinitionsSpec](definitionsFile)
	if err != nil {
		return nil, err
	}
	return NewStore(defs)
}

// NewStore indexes and validates defs.
func NewStore(defs DefinitionsSpec) (*Store, error) {
	s := &Store{}
	if err := s.index(defs); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads entities.yaml. On error the previous definitions stay in
// place. Only spawns made after a reload see the new values.
func (s *Store) Reload() error {
	defs, err := LoadSpec[DefinitionsSpec](definitionsFile)
	if err != nil {
		return err
	}
	return s.index(defs)
}

func (s *Store) index(defs DefinitionsSpec) error {
	players := make(map[string]PlayerSpec, len(defs.Players))
	enemies := make(map[string]EnemySpec, len(defs.Enemies))
	npcs := make(map[string]NPCSpec, len(defs.NPCs))
	weapons := make(map[string]WeaponSpec, len(defs.Weapons))
	seen := make(map[string]string)

	claim := func(kind, name string) error {
		if name == "" {
			return fmt.Errorf("prefabs: %s definition without name", kind)
		}
		if prev, ok := seen[kind+"/"+name]; ok {
			return fmt.Errorf("prefabs: duplicate %s definition %q (%s)", kind, name, prev)
		}
		seen[kind+"/"+name] = kind
		return nil
	}

	for _, p := range defs.Players {
		if err := claim("player", p.Name); err != nil {
			return err
		}
		if err := requireAnimations(p.EntitySpec, "idle", "run"); err != nil {
			return err
		}
		players[p.Name] = p
	}
	for _, e := range defs.Enemies {
		if err := claim("enemy", e.Name); err != nil {
			return err
		}
		if err := requireAnimations(e.EntitySpec, "idle", "run"); err != nil {
			return err
		}
		enemies[e.Name] = e
	}
	for _, n := range defs.NPCs {
		if err := claim("npc", n.Name); err != nil {
			return err
		}
		if err := requireAnimations(n.EntitySpec, "idle"); err != nil {
			return err
		}
		npcs[n.Name] = n
	}
	for _, w := range defs.Weapons {
		if err := claim("weapon", w.Name); err != nil {
			return err
		}
		weapons[w.Name] = w
	}

	for _, p := range players {
		if p.Weapon == "" {
			continue
		}
		if _, ok := weapons[p.Weapon]; !ok {
			return fmt.Errorf("prefabs: player %q weapon %q: %w", p.Name, p.Weapon, ErrNotFound)
		}
	}

	s.mu.Lock()
	s.players, s.enemies, s.npcs, s.weapons = players, enemies, npcs, weapons
	s.mu.Unlock()
	return nil
}

func requireAnimations(e EntitySpec, types ...string) error {
	for _, typ := range types {
		if _, ok := e.Animation(typ); !ok {
			return fmt.Errorf("prefabs: %s %q missing %s animation", e.Type, e.Name, typ)
		}
	}
	return nil
}

func (s *Store) Player(name string) (PlayerSpec, bool) {
	if s == nil {
		return PlayerSpec{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[name]
	p.EntitySpec = p.EntitySpec.clone()
	return p, ok
}

func (s *Store) Enemy(name string) (EnemySpec, bool) {
	if s == nil {
		return EnemySpec{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.enemies[name]
	e.EntitySpec = e.EntitySpec.clone()
	return e, ok
}

func (s *Store) NPC(name string) (NPCSpec, bool) {
	if s == nil {
		return NPCSpec{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.npcs[name]
	n.EntitySpec = n.EntitySpec.clone()
	return n, ok
}

func (s *Store) Weapon(name string) (WeaponSpec, bool) {
	if s == nil {
		return WeaponSpec{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.weapons[name]
	w.EntitySpec = w.EntitySpec.clone()
	return w, ok
}

func (e EntitySpec) clone() EntitySpec {
	if e.Animations != nil {
		e.Animations = append([]AnimationSpec(nil), e.Animations...)
	}
	return e
}
