package component

// Enemy is the mutable stat copy of an enemy definition.
type Enemy struct {
	Type      string
	Value     int
	Health    int
	MaxHealth int
	Speed     float64
	Damage    int
	Knockback float64
}

var EnemyComponent = NewComponent[Enemy]()
