package component

const (
	CategoryWall uint32 = 1 << iota
	CategoryPlayer
	CategoryEnemy
	CategoryNPC
)

// CollisionLayer declares a collision category and the categories it
// collides with. A zero Mask collides with nothing.
type CollisionLayer struct {
	Category uint32
	Mask     uint32
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
