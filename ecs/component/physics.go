package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data. Body and Shape are filled in
// by the physics system the first frame it sees the entity.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Width  float64
	Height float64
	Static bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
