package component

// Hazard damages the player on overlap. Bounds are centered on Transform.
type Hazard struct {
	Width  float64
	Height float64
	Damage int
}

var HazardComponent = NewComponent[Hazard]()
