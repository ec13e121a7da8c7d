package component

import (
	"time"

	"github.com/milk9111/dungeon/ecs/timer"
)

type WeaponState int

const (
	WeaponDefault WeaponState = iota
	WeaponEquipped
	WeaponActivated
	WeaponDropped
)

func (s WeaponState) String() string {
	switch s {
	case WeaponDefault:
		return "default"
	case WeaponEquipped:
		return "equipped"
	case WeaponActivated:
		return "activated"
	case WeaponDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Weapon is either lying in the world (Owner == 0) or held by exactly one
// player. Angle is the aim angle in radians; Flipped alternates the swing
// direction after every attack.
type Weapon struct {
	Name      string
	State     WeaponState
	Damage    int
	Knockback float64
	Width     float64
	Height    float64
	Owner     uint64
	Angle     float64
	Flipped   bool

	// SwingStart is the world time the current swing began.
	SwingStart time.Duration
	SwingEnd   timer.Handle
}

var WeaponComponent = NewComponent[Weapon]()
