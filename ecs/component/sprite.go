package component

import "image/color"

// Sprite describes how frontends draw an entity without textures.
type Sprite struct {
	Key   string
	Color color.RGBA
	Layer int
}

var SpriteComponent = NewComponent[Sprite]()
