package component

// Input stores the per-frame control state for the player. Attack and
// Activate are edge-triggered: true only on the frame they were pressed.
type Input struct {
	MoveX    float64
	MoveY    float64
	AimX     float64
	AimY     float64
	Attack   bool
	Activate bool
}

var InputComponent = NewComponent[Input]()
