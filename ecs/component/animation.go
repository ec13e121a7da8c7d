package component

// AnimationDef is one entry of an actor's animation set.
type AnimationDef struct {
	Type      string
	Key       string
	Start     int
	End       int
	FrameRate float64
	Loop      bool
}

// Animation plays frame ranges of the actor's sprite sheet. Time is the
// seconds spent in the current animation.
type Animation struct {
	Sprite  string
	Defs    map[string]AnimationDef
	Current string
	Frame   int
	Time    float64
}

// Play switches to the animation of the given type, keeping progress when
// it is already playing.
func (a *Animation) Play(typ string) bool {
	if a == nil {
		return false
	}
	if _, ok := a.Defs[typ]; !ok {
		return false
	}
	if a.Current == typ {
		return true
	}
	a.Current = typ
	a.Frame = a.Defs[typ].Start
	a.Time = 0
	return true
}

var AnimationComponent = NewComponent[Animation]()
