package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
type PhysicsBody struct {
	Body          *cp.Body
	Shapes        []*cp.Shape
	Width         float64
	Height        float64
	Mass          float64
	Friction      float64
	FixedRotation bool
	Static        bool
}

// HalfExtents returns half the collider size.
func (p *PhysicsBody) HalfExtents() (float64, float64) {
	return p.Width / 2, p.Height / 2
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
