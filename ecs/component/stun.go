package component

import "github.com/milk9111/dungeon/ecs/timer"

// Stun tracks the recovery timer of a stunned actor.
type Stun struct {
	Recover timer.Handle
}

var StunComponent = NewComponent[Stun]()
