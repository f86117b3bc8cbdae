package component

import "github.com/milk9111/charkit/controller"

// Dynamic marks an entity whose transform follows a simulated physics body,
// like a shoveable crate.
type Dynamic struct {
	Object controller.Object
}

var DynamicComponent = NewHandle[Dynamic]()
