package component

// Player tags the keyboard-driven entity.
type Player struct{}

var PlayerComponent = NewHandle[Player]()
