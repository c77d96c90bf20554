package system

import (
	"github.com/milk9111/rampbox/ecs"
	"github.com/milk9111/rampbox/ecs/component"
	"github.com/milk9111/rampbox/traversal"
)

// GroundProbeSystem casts each body's probe ray and stores the sample.
type GroundProbeSystem struct{}

func NewGroundProbeSystem() *GroundProbeSystem {
	return &GroundProbeSystem{}
}

func (g *GroundProbeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.GroundProbeComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, probe *component.GroundProbe) {
		probe.Sample = traversal.Sample{}
		if pb.Body == nil || pb.Static || pw.Closed() {
			return
		}

		reach := probe.Reach
		if reach == 0 {
			reach = traversal.DefaultProbeReach
		}

		var caster traversal.RayCaster = pw
		if len(pb.Shapes) > 0 {
			caster = pw.Prober(pb.Shapes[0])
		}

		hw, hh := pb.HalfExtents()
		probe.Sample = traversal.SampleGround(caster, pb.Body.Position(), hw, hh, reach, probe.Corner)
	})
}
