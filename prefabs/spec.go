package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SpriteSpec struct {
	Key     string     `yaml:"key"`
	Texture string     `yaml:"texture"`
	Frame   string     `yaml:"frame"`
	Color   *YAMLColor `yaml:"color"`
}

type AnimationSpec struct {
	Type      string  `yaml:"type"`
	Key       string  `yaml:"key"`
	Start     int     `yaml:"start"`
	End       int     `yaml:"end"`
	FrameRate float64 `yaml:"frame_rate"`
	Loop      bool    `yaml:"loop"`
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type EntitySpec struct {
	Name       string          `yaml:"name"`
	Type       string          `yaml:"type"`
	Sprite     SpriteSpec      `yaml:"sprite"`
	Animations []AnimationSpec `yaml:"animations"`
	Size       SizeSpec        `yaml:"size"`
}

// Animation returns the animation of the given type.
func (e EntitySpec) Animation(typ string) (AnimationSpec, bool) {
	for _, a := range e.Animations {
		if a.Type == typ {
			return a, true
		}
	}
	return AnimationSpec{}, false
}

type PlayerStatsSpec struct {
	Score    int     `yaml:"score"`
	Gold     int     `yaml:"gold"`
	Lives    int     `yaml:"lives"`
	MaxLives int     `yaml:"max_lives"`
	Speed    float64 `yaml:"speed"`
}

type PlayerSpec struct {
	EntitySpec `yaml:",inline"`
	Weapon     string          `yaml:"weapon"`
	Stats      PlayerStatsSpec `yaml:"stats"`
}

type EnemyStatsSpec struct {
	Health    int     `yaml:"health"`
	Speed     float64 `yaml:"speed"`
	Damage    int     `yaml:"damage"`
	Knockback float64 `yaml:"knockback"`
}

type EnemySpec struct {
	EntitySpec `yaml:",inline"`
	Value      int            `yaml:"value"`
	Stats      EnemyStatsSpec `yaml:"stats"`
}

type NPCSpec struct {
	EntitySpec `yaml:",inline"`
}

type WeaponStatsSpec struct {
	Damage    int     `yaml:"damage"`
	Knockback float64 `yaml:"knockback"`
}

type WeaponSpec struct {
	EntitySpec `yaml:",inline"`
	Stats      WeaponStatsSpec `yaml:"stats"`
}

// DefinitionsSpec is the layout of entities.yaml.
type DefinitionsSpec struct {
	Players []PlayerSpec `yaml:"players"`
	Enemies []EnemySpec  `yaml:"enemies"`
	NPCs    []NPCSpec    `yaml:"npcs"`
	Weapons []WeaponSpec `yaml:"weapons"`
}

// TuningSpec is the layout of game.yaml. Durations are milliseconds.
type TuningSpec struct {
	TicksPerSecond  int        `yaml:"ticks_per_second"`
	StunMS          int        `yaml:"stun_ms"`
	FlashMS         int        `yaml:"flash_ms"`
	FlashColor      *YAMLColor `yaml:"flash_color"`
	ClearDelayMS    int        `yaml:"clear_delay_ms"`
	CompletionBonus int        `yaml:"completion_bonus"`
	SwingMS         int        `yaml:"swing_ms"`
	SwingRecoverMS  int        `yaml:"swing_recover_ms"`
	SwingArcDeg     float64    `yaml:"swing_arc_deg"`
	SwingReach      float64    `yaml:"swing_reach"`
	FadeInMS        int        `yaml:"fade_in_ms"`
	ContactMargin   float64    `yaml:"contact_margin"`
	ButtonRange     float64    `yaml:"button_range"`
	CoinValue       int        `yaml:"coin_value"`
	HazardDamage    int        `yaml:"hazard_damage"`
	EnemyDrag       float64    `yaml:"enemy_drag"`
	PlayerDrag      float64    `yaml:"player_drag"`
}

func (t TuningSpec) Stun() time.Duration         { return ms(t.StunMS) }
func (t TuningSpec) Flash() time.Duration        { return ms(t.FlashMS) }
func (t TuningSpec) ClearDelay() time.Duration   { return ms(t.ClearDelayMS) }
func (t TuningSpec) Swing() time.Duration        { return ms(t.SwingMS) }
func (t TuningSpec) SwingRecover() time.Duration { return ms(t.SwingRecoverMS) }
func (t TuningSpec) FadeIn() time.Duration       { return ms(t.FadeInMS) }

// TickDuration is the fixed simulation step.
func (t TuningSpec) TickDuration() time.Duration {
	if t.TicksPerSecond <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(t.TicksPerSecond)
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// DefaultTuning mirrors game.yaml and backs missing keys.
func DefaultTuning() TuningSpec {
	return TuningSpec{
		TicksPerSecond:  60,
		StunMS:          1000,
		FlashMS:         200,
		FlashColor:      &YAMLColor{Color: color.NRGBA{R: 255, A: 255}},
		ClearDelayMS:    400,
		CompletionBonus: 500,
		SwingMS:         100,
		SwingRecoverMS:  200,
		SwingArcDeg:     240,
		SwingReach:      18,
		FadeInMS:        600,
		ContactMargin:   1,
		ButtonRange:     20,
		CoinValue:       1,
		HazardDamage:    1,
		EnemyDrag:       50,
		PlayerDrag:      200,
	}
}

func LoadTuning() (TuningSpec, error) {
	data, err := Load("game.yaml")
	if err != nil {
		return TuningSpec{}, fmt.Errorf("prefabs: load game.yaml: %w", err)
	}
	spec := DefaultTuning()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return TuningSpec{}, fmt.Errorf("prefabs: unmarshal game.yaml: %w", err)
	}
	return spec, nil
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
}

// AudioSpec is the layout of audio.yaml: cue name to asset file.
type AudioSpec struct {
	Clips []AudioClipSpec `yaml:"clips"`
}

func LoadAudioSpec() (*AudioSpec, error) {
	spec, err := LoadSpec[AudioSpec]("audio.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// RGBA8 flattens the color, defaulting to fallback when unset.
func (c *YAMLColor) RGBA8(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	r, g, b, a := c.Color.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
