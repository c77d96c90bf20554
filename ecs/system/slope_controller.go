package system

import (
	"github.com/milk9111/rampbox/ecs"
	"github.com/milk9111/rampbox/ecs/component"
	"github.com/milk9111/rampbox/traversal"
)

// SlopeControllerSystem turns input and the ground sample into an impulse
// or a velocity override on each controlled body.
type SlopeControllerSystem struct {
	dt float64
}

func NewSlopeControllerSystem(dt float64) *SlopeControllerSystem {
	return &SlopeControllerSystem{dt: dt}
}

func (s *SlopeControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	gravity := w.PhysicsWorld().Gravity()
	events := w.Events()

	ecs.ForEach4(w,
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.GroundProbeComponent.Kind(),
		component.SlopeControllerComponent.Kind(),
		func(e ecs.Entity, input *component.Input, pb *component.PhysicsBody, probe *component.GroundProbe, ctrl *component.SlopeController) {
			if pb.Body == nil || pb.Static {
				return
			}

			if input.CycleStrategy {
				if len(ctrl.Choices) > 0 {
					ctrl.Strategy = traversal.Cycle(ctrl.Choices, ctrl.Strategy)
				} else {
					ctrl.Strategy = traversal.NextStrategy(ctrl.Strategy)
				}
				events.Push(ecs.Event{Type: ecs.EventStrategyChanged, Data: ecs.ControllerEvent{
					Entity:   e,
					Mode:     ctrl.LastMode.String(),
					Strategy: ctrl.Strategy.Name(),
				}})
			}

			frame := traversal.Frame{
				MoveX:       input.MoveX,
				JumpPressed: input.JumpPressed,
				Normal:      probe.Sample.Normal,
				Gravity:     gravity,
				Dt:          s.dt,
			}
			action := traversal.Decide(ctrl.Strategy, ctrl.Tuning, frame, pb.Body.Velocity(), pb.Body.Mass())
			traversal.Apply(pb.Body, action)

			if action.Mode == traversal.ModeMove {
				if failing, ok := ctrl.Strategy.(interface{ Err() error }); ok && failing.Err() != nil {
					events.Push(ecs.Event{Type: ecs.EventStrategyFailed, Data: ecs.ControllerEvent{
						Entity:   e,
						Mode:     action.Mode.String(),
						Strategy: ctrl.Strategy.Name(),
						Err:      failing.Err(),
					}})
				}
			}

			if action.Mode != ctrl.LastMode {
				name := traversal.StrategyTangent
				if ctrl.Strategy != nil {
					name = ctrl.Strategy.Name()
				}
				events.Push(ecs.Event{Type: ecs.EventModeChanged, Data: ecs.ControllerEvent{
					Entity:   e,
					Mode:     action.Mode.String(),
					Strategy: name,
				}})
			}
			ctrl.LastMode = action.Mode
			ctrl.LastImpulse = action.Impulse
		})
}
