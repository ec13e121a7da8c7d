package levels

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// Info is one registry entry. Next is an optional explicit exit edge.
type Info struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Music string `json:"music"`
	File  string `json:"file"`
	Next  string `json:"next,omitempty"`
}

// Registry is the ordered list of playable levels.
type Registry struct {
	levels []Info
	byKey  map[string]int
}

func LoadRegistry() (*Registry, error) {
	data, err := fs.ReadFile(LevelsFS, "registry.json")
	if err != nil {
		return nil, fmt.Errorf("levels: read registry: %w", err)
	}
	var infos []Info
	if err := json.Unmarshal(data, &infos); err != nil {
		return nil, fmt.Errorf("levels: unmarshal registry: %w", err)
	}
	return NewRegistry(infos)
}

func NewRegistry(infos []Info) (*Registry, error) {
	r := &Registry{byKey: make(map[string]int, len(infos))}
	for _, info := range infos {
		if info.Key == "" {
			return nil, fmt.Errorf("levels: registry entry without key")
		}
		if _, dup := r.byKey[info.Key]; dup {
			return nil, fmt.Errorf("levels: duplicate level %q", info.Key)
		}
		r.byKey[info.Key] = len(r.levels)
		r.levels = append(r.levels, info)
	}
	for _, info := range r.levels {
		if info.Next == "" {
			continue
		}
		if _, ok := r.byKey[info.Next]; !ok {
			return nil, fmt.Errorf("levels: %s next %q: %w", info.Key, info.Next, ErrUnknownLevel)
		}
	}
	return r, nil
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.levels)
}

func (r *Registry) First() (Info, bool) {
	if r == nil || len(r.levels) == 0 {
		return Info{}, false
	}
	return r.levels[0], true
}

func (r *Registry) Get(key string) (Info, bool) {
	if r == nil {
		return Info{}, false
	}
	i, ok := r.byKey[key]
	if !ok {
		return Info{}, false
	}
	return r.levels[i], true
}

// Next picks the level an exit from key leads to: the explicit edge when
// set, otherwise the following entry in registry order (wrapping) that is
// not key itself. A single-level registry leads back to itself.
func (r *Registry) Next(key string) (Info, error) {
	if r == nil {
		return Info{}, ErrUnknownLevel
	}
	i, ok := r.byKey[key]
	if !ok {
		return Info{}, fmt.Errorf("levels: next of %q: %w", key, ErrUnknownLevel)
	}
	cur := r.levels[i]
	if cur.Next != "" {
		return r.levels[r.byKey[cur.Next]], nil
	}
	for step := 1; step <= len(r.levels); step++ {
		cand := r.levels[(i+step)%len(r.levels)]
		if cand.Key != key {
			return cand, nil
		}
	}
	return cur, nil
}

// Load reads the level file of key.
func (r *Registry) Load(key string) (*Level, error) {
	info, ok := r.Get(key)
	if !ok {
		return nil, fmt.Errorf("levels: load %q: %w", key, ErrUnknownLevel)
	}
	file := info.File
	if file == "" {
		file = info.Key + ".json"
	}
	lvl, err := LoadLevelFromFS(file)
	if err != nil {
		return nil, err
	}
	if lvl.Key == "" {
		lvl.Key = info.Key
	}
	return lvl, nil
}
