package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampbox/ecs"
	"github.com/milk9111/rampbox/ecs/component"
	"github.com/milk9111/rampbox/traversal"
)

// BoxStatus is a read-only snapshot of the controlled box for overlays
// and logs.
type BoxStatus struct {
	Entity      ecs.Entity
	Position    cp.Vector
	Velocity    cp.Vector
	Normal      cp.Vector
	GroundAngle float64
	OnSlope     bool
	Strategy    string
	Mode        traversal.Mode
}

// PlayerStatus reports on the first entity tagged as the player.
func PlayerStatus(w *ecs.World) (BoxStatus, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return BoxStatus{}, false
	}
	pb, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return BoxStatus{}, false
	}

	status := BoxStatus{
		Entity:   player,
		Position: pb.Body.Position(),
		Velocity: pb.Body.Velocity(),
	}

	threshold := traversal.DefaultSlopeThreshold
	if ctrl, ok := ecs.Get(w, player, component.SlopeControllerComponent.Kind()); ok {
		if ctrl.Strategy != nil {
			status.Strategy = ctrl.Strategy.Name()
		}
		status.Mode = ctrl.LastMode
		if ctrl.Tuning.SlopeThreshold > 0 {
			threshold = ctrl.Tuning.SlopeThreshold
		}
	}
	if probe, ok := ecs.Get(w, player, component.GroundProbeComponent.Kind()); ok {
		status.Normal = probe.Sample.Normal
		status.GroundAngle = traversal.GroundAngle(status.Normal)
		status.OnSlope = traversal.IsOnSlope(status.Normal, threshold)
	}
	return status, true
}
