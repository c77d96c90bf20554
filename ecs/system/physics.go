package system

import (
	"github.com/milk9111/rampbox/ecs"
	"github.com/milk9111/rampbox/ecs/component"
)

// PhysicsSystem steps the space by a fixed dt and copies body poses back
// into transforms.
type PhysicsSystem struct {
	dt float64
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	return &PhysicsSystem{dt: dt}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw.Closed() {
		return
	}
	pw.Step(ps.dt)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, transform *component.Transform) {
		if pb.Body == nil || pb.Static {
			return
		}
		pos := pb.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = pb.Body.Angle()
	})
}
