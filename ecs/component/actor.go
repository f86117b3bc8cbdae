package component

import (
	"github.com/milk9111/charkit/controller"
	"github.com/milk9111/charkit/physics"
)

// Actor wires an entity to its movement controller and physics body. Size is
// the entity's scale factor, fed to the controller's size callback.
type Actor struct {
	Body *physics.Character
	Core *controller.Core
	Size float64
}

var ActorComponent = NewHandle[Actor]()
