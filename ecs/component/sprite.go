package component

import "image/color"

// Sprite is a flat-colored rectangle centered on the entity's transform.
type Sprite struct {
	Width  float64
	Height float64
	Color  color.Color
}

var SpriteComponent = NewHandle[Sprite]()
