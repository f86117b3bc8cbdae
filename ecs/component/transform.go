package component

// Transform is an entity's render position and rotation in world space.
type Transform struct {
	X     float64
	Y     float64
	Angle float64
}

var TransformComponent = NewHandle[Transform]()
