package component

// Pickup is a collectible removed on overlap with the player.
type Pickup struct {
	Kind   string
	Value  int
	Width  float64
	Height float64
}

var PickupComponent = NewComponent[Pickup]()
