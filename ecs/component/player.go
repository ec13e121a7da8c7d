package component

// Player holds the carried-over player data. Weapon is the entity of the
// equipped weapon, zero when empty-handed.
type Player struct {
	Score         int
	Gold          int
	Lives         int
	MaxLives      int
	Speed         float64
	Weapon        uint64
	InputDisabled bool
}

var PlayerComponent = NewComponent[Player]()
