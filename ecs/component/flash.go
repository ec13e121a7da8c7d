package component

import (
	"image/color"

	"github.com/milk9111/dungeon/ecs/timer"
)

// Flash tints a sprite while its timer is pending.
type Flash struct {
	Tint  color.RGBA
	Clear timer.Handle
}

func (f *Flash) On() bool {
	return f != nil && f.Clear.Pending()
}

var FlashComponent = NewComponent[Flash]()
