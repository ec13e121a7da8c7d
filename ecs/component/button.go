package component

// Button toggles the room's arena when the player activates it in range.
type Button struct {
	Active bool
	Range  float64
}

var ButtonComponent = NewComponent[Button]()
