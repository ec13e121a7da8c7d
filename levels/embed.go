package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// ErrUnknownLevel is returned for level keys missing from the registry.
var ErrUnknownLevel = errors.New("levels: unknown level")

// Level is the static room data. Tile indices are 1-based; 0 is empty.
type Level struct {
	Key            string              `json:"key"`
	Width          int                 `json:"width"`
	Height         int                 `json:"height"`
	TileSize       int                 `json:"tile_size"`
	Layers         []LayerData         `json:"layers"`
	Objects        map[string][]Object `json:"objects,omitempty"`
	Passable       []int               `json:"passable,omitempty"`
	Doors          []DoorPair          `json:"doors,omitempty"`
	DoorLayer      string              `json:"door_layer,omitempty"`
	GroundLayer    string              `json:"ground_layer,omitempty"`
	HazardTile     int                 `json:"hazard_tile,omitempty"`
	ExitTile       int                 `json:"exit_tile,omitempty"`
	ExitPlacedTile int                 `json:"exit_placed_tile,omitempty"`
	AutoWave       bool                `json:"auto_wave,omitempty"`
	WaveScript     string              `json:"wave_script,omitempty"`
}

type LayerData struct {
	Name    string `json:"name"`
	Physics bool   `json:"physics"`
	Tiles   []int  `json:"tiles"`
}

// Object is a named point on an object layer, in world coordinates.
type Object struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// DoorPair maps a closed door tile to its open counterpart.
type DoorPair struct {
	Closed int `json:"closed"`
	Open   int `json:"open"`
}

// Object layer names.
const (
	LayerPlayer  = "Player"
	LayerEnemies = "Enemies"
	LayerNPC     = "NPC"
	LayerWeapons = "Weapons"
	LayerButtons = "Buttons"
	LayerItems   = "Items"
	LayerHidden  = "Hidden"
)

// FindObject returns the first object named name on layer.
func (l *Level) FindObject(layer, name string) (Object, bool) {
	if l == nil {
		return Object{}, false
	}
	for _, o := range l.Objects[layer] {
		if o.Name == name {
			return o, true
		}
	}
	return Object{}, false
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 || l.TileSize <= 0 {
		return fmt.Errorf("levels: %s: invalid dimensions %dx%d@%d", l.Key, l.Width, l.Height, l.TileSize)
	}
	for _, layer := range l.Layers {
		if len(layer.Tiles) != l.Width*l.Height {
			return fmt.Errorf("levels: %s: layer %q has %d tiles, want %d", l.Key, layer.Name, len(layer.Tiles), l.Width*l.Height)
		}
	}
	if _, ok := l.FindObject(LayerPlayer, "Spawn"); !ok {
		return fmt.Errorf("levels: %s: no Player/Spawn object", l.Key)
	}
	return nil
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return ParseLevel(data)
}

// ParseLevel decodes and validates a level file.
func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}
