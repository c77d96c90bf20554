package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampbox/ecs"
	"github.com/milk9111/rampbox/ecs/component"
	"github.com/milk9111/rampbox/prefabs"
	"github.com/milk9111/rampbox/script"
)

// NewBox spawns the controllable box described by spec.
func NewBox(w *ecs.World, spec *prefabs.BoxSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("box: nil spec")
	}
	pw := w.PhysicsWorld()
	if pw == nil || pw.Closed() {
		return 0, fmt.Errorf("box: no physics world")
	}

	choices, err := script.Choices(spec.Controller.Scripts)
	if err != nil {
		return 0, fmt.Errorf("box: %w", err)
	}
	strategy, err := script.Select(choices, spec.Controller.Strategy)
	if err != nil {
		return 0, fmt.Errorf("box: %w", err)
	}

	pos := cp.Vector{X: spec.Transform.X, Y: spec.Transform.Y}
	body, shape := pw.AddDynamicBox(pos, spec.Collider.Width, spec.Collider.Height, spec.Mass, spec.Friction, spec.FixedRotation)
	if body == nil {
		return 0, fmt.Errorf("box: invalid collider %vx%v", spec.Collider.Width, spec.Collider.Height)
	}
	if spec.Transform.Rotation != 0 {
		body.SetAngle(spec.Transform.Rotation)
	}

	box := ecs.CreateEntity(w)
	if err := ecs.Add(w, box, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("box: add player tag: %w", err)
	}
	if err := ecs.Add(w, box, component.TransformComponent.Kind(), &component.Transform{
		X:        pos.X,
		Y:        pos.Y,
		Rotation: spec.Transform.Rotation,
	}); err != nil {
		return 0, fmt.Errorf("box: add transform: %w", err)
	}
	if err := ecs.Add(w, box, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:          body,
		Shapes:        []*cp.Shape{shape},
		Width:         spec.Collider.Width,
		Height:        spec.Collider.Height,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		FixedRotation: spec.FixedRotation,
	}); err != nil {
		return 0, fmt.Errorf("box: add physics body: %w", err)
	}
	if err := ecs.Add(w, box, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("box: add input: %w", err)
	}
	if err := ecs.Add(w, box, component.GroundProbeComponent.Kind(), &component.GroundProbe{
		Corner: spec.Controller.Corner(),
		Reach:  spec.Controller.ProbeReach,
	}); err != nil {
		return 0, fmt.Errorf("box: add ground probe: %w", err)
	}
	if err := ecs.Add(w, box, component.SlopeControllerComponent.Kind(), &component.SlopeController{
		Strategy: strategy,
		Choices:  choices,
		Tuning:   spec.Controller.Tuning(),
	}); err != nil {
		return 0, fmt.Errorf("box: add slope controller: %w", err)
	}

	return box, nil
}

// RetuneBox applies a reloaded spec to a live box. Position and velocity
// are left alone.
func RetuneBox(w *ecs.World, box ecs.Entity, spec *prefabs.BoxSpec) error {
	if spec == nil {
		return fmt.Errorf("box: nil spec")
	}
	ctrl, ok := ecs.Get(w, box, component.SlopeControllerComponent.Kind())
	if !ok {
		return fmt.Errorf("box: entity %v has no slope controller", box)
	}
	choices, err := script.Choices(spec.Controller.Scripts)
	if err != nil {
		return fmt.Errorf("box: %w", err)
	}
	strategy, err := script.Select(choices, spec.Controller.Strategy)
	if err != nil {
		return fmt.Errorf("box: %w", err)
	}
	ctrl.Strategy = strategy
	ctrl.Choices = choices
	ctrl.Tuning = spec.Controller.Tuning()

	if probe, ok := ecs.Get(w, box, component.GroundProbeComponent.Kind()); ok {
		probe.Corner = spec.Controller.Corner()
		probe.Reach = spec.Controller.ProbeReach
	}

	if pb, ok := ecs.Get(w, box, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		if pb.Mass != spec.Mass {
			pb.Body.SetMass(spec.Mass)
			if !pb.FixedRotation {
				pb.Body.SetMoment(cp.MomentForBox(spec.Mass, pb.Width, pb.Height))
			}
			pb.Mass = spec.Mass
		}
		if pb.Friction != spec.Friction {
			for _, shape := range pb.Shapes {
				shape.SetFriction(spec.Friction)
			}
			pb.Friction = spec.Friction
		}
	}
	return nil
}
