package component

// Velocity is in world units per second. Drag decays it toward zero each
// tick; Frozen pins the entity in place (an attacking enemy).
type Velocity struct {
	X      float64
	Y      float64
	Drag   float64
	Frozen bool
}

var VelocityComponent = NewComponent[Velocity]()
