package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampbox/ecs"
	"github.com/milk9111/rampbox/ecs/component"
	"github.com/milk9111/rampbox/ecs/entity"
	"github.com/milk9111/rampbox/prefabs"
	"github.com/milk9111/rampbox/traversal"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60.0

type scriptedInput struct {
	frames []component.Input
	polls  int
}

func (s *scriptedInput) Poll() component.Input {
	s.polls++
	if len(s.frames) == 0 {
		return component.Input{}
	}
	next := s.frames[0]
	s.frames = s.frames[1:]
	return next
}

func rampScene(t *testing.T, x, y float64) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(ecs.DefaultPhysicsConfig())
	w.SetPhysicsWorld(pw)
	t.Cleanup(pw.Close)

	_, err := entity.NewLevel(w, &prefabs.LevelSpec{
		Name: "twin_ramps",
		Grounds: []prefabs.GroundSpec{{
			Position: prefabs.Vec2Spec{X: 3, Y: 2},
			Friction: 0.8,
			Slab:     &prefabs.SlabSpec{Width: 2, Height: 0.2},
			Ramps: []prefabs.RampSpec{
				{XOffset: -2.5, Angle: 45, Length: 1.5, Base: 0.1},
				{XOffset: 2.5, Angle: 45, Length: 1.5, Base: 0.1},
			},
		}},
	})
	require.NoError(t, err)

	d := traversal.DefaultTuning()
	box, err := entity.NewBox(w, &prefabs.BoxSpec{
		Transform: prefabs.TransformSpec{X: x, Y: y},
		Collider:  prefabs.ColliderSpec{Width: 0.2, Height: 0.2},
		Mass:      1,
		Friction:  0.8,
		Controller: prefabs.ControllerSpec{
			Strategy:       traversal.StrategyTangent,
			MoveImpulse:    d.MoveImpulse,
			MoveSpeed:      d.MoveSpeed,
			JumpSpeed:      d.JumpSpeed,
			SlopeThreshold: d.SlopeThreshold,
			ProbeReach:     d.ProbeReach,
		},
	})
	require.NoError(t, err)
	return w, box
}

func controllerFrame(w *ecs.World, input component.Input) {
	ecs.NewScheduler(
		NewInputSystem(&scriptedInput{frames: []component.Input{input}}),
		NewGroundProbeSystem(),
		NewSlopeControllerSystem(dt),
	).Update(w)
}

func TestInputSystemCopiesPolledFrame(t *testing.T) {
	w := ecs.NewWorld()
	a := ecs.CreateEntity(w)
	b := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, a, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, b, component.InputComponent.Kind(), &component.Input{MoveX: 1}))

	src := &scriptedInput{frames: []component.Input{{MoveX: -1, JumpPressed: true}}}
	sys := NewInputSystem(src)
	sys.Update(w)

	for _, e := range []ecs.Entity{a, b} {
		in, ok := ecs.Get(w, e, component.InputComponent.Kind())
		require.True(t, ok)
		require.Equal(t, -1.0, in.MoveX)
		require.True(t, in.JumpPressed)
	}
	require.Equal(t, 1, src.polls)

	// Edge-triggered flags do not persist into the next frame.
	sys.Update(w)
	in, _ := ecs.Get(w, a, component.InputComponent.Kind())
	require.False(t, in.JumpPressed)
	require.Zero(t, in.MoveX)
}

func TestInputSystemWithoutSource(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{MoveX: 1, Jump: true}))

	NewInputSystem(nil).Update(w)

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	require.Equal(t, component.Input{}, *in)
}

func TestGroundProbeSystem(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		hit     bool
		normal  cp.Vector
		onSlope bool
	}{
		{name: "left_ramp", x: 1, y: 3.4, hit: true, normal: cp.Vector{X: 0.7071, Y: 0.7071}, onSlope: true},
		{name: "slab", x: 3, y: 2.25, hit: true, normal: cp.Vector{X: 0, Y: 1}},
		{name: "open_air", x: 3, y: 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, box := rampScene(t, tc.x, tc.y)
			NewGroundProbeSystem().Update(w)

			probe, ok := ecs.Get(w, box, component.GroundProbeComponent.Kind())
			require.True(t, ok)
			require.Equal(t, tc.hit, probe.Sample.Hit)
			require.InDelta(t, tc.normal.X, probe.Sample.Normal.X, 1e-3)
			require.InDelta(t, tc.normal.Y, probe.Sample.Normal.Y, 1e-3)
			require.Equal(t, cp.Vector{X: tc.x, Y: tc.y}, probe.Sample.Start)
			require.InDelta(t, tc.x-0.2, probe.Sample.End.X, 1e-9)
			require.InDelta(t, tc.y-0.2, probe.Sample.End.Y, 1e-9)
			require.Equal(t, tc.onSlope, traversal.IsOnSlope(probe.Sample.Normal, traversal.DefaultSlopeThreshold))
		})
	}
}

func TestGroundProbeShortReachIsNoGround(t *testing.T) {
	w, box := rampScene(t, 3, 2.25)
	probe, _ := ecs.Get(w, box, component.GroundProbeComponent.Kind())
	probe.Reach = 1

	NewGroundProbeSystem().Update(w)
	require.False(t, probe.Sample.Hit)
	require.Equal(t, cp.Vector{}, probe.Sample.Normal)
}

func TestSlopeControllerStabilizesOnRamp(t *testing.T) {
	w, box := rampScene(t, 1, 3.4)
	controllerFrame(w, component.Input{})

	ctrl, _ := ecs.Get(w, box, component.SlopeControllerComponent.Kind())
	require.Equal(t, traversal.ModeStabilize, ctrl.LastMode)

	// Tangential gravity on a 45 degree ramp is (4.9, -4.9).
	require.InDelta(t, -4.9*dt, ctrl.LastImpulse.X, 1e-3)
	require.InDelta(t, 4.9*dt, ctrl.LastImpulse.Y, 1e-3)

	pb, _ := ecs.Get(w, box, component.PhysicsBodyComponent.Kind())
	require.InDelta(t, -4.9*dt, pb.Body.Velocity().X, 1e-3)
	require.InDelta(t, 4.9*dt, pb.Body.Velocity().Y, 1e-3)

	events := w.Events().Drain()
	require.Len(t, events, 1)
	require.Equal(t, ecs.EventModeChanged, events[0].Type)
	require.Equal(t, "stabilize", events[0].Data.(ecs.ControllerEvent).Mode)
}

func TestSlopeControllerIdleWithoutGround(t *testing.T) {
	w, box := rampScene(t, 3, 8)
	controllerFrame(w, component.Input{})

	ctrl, _ := ecs.Get(w, box, component.SlopeControllerComponent.Kind())
	require.Equal(t, traversal.ModeIdle, ctrl.LastMode)
	require.Equal(t, cp.Vector{}, ctrl.LastImpulse)

	pb, _ := ecs.Get(w, box, component.PhysicsBodyComponent.Kind())
	require.Equal(t, cp.Vector{}, pb.Body.Velocity())
	require.Empty(t, w.Events().Drain())
}

func TestSlopeControllerIdleOnFlatGround(t *testing.T) {
	w, box := rampScene(t, 3, 2.25)
	controllerFrame(w, component.Input{})

	ctrl, _ := ecs.Get(w, box, component.SlopeControllerComponent.Kind())
	require.Equal(t, traversal.ModeIdle, ctrl.LastMode)
}

func TestSlopeControllerMovesAlongRamp(t *testing.T) {
	w, box := rampScene(t, 1, 3.4)
	controllerFrame(w, component.Input{MoveX: 1})

	ctrl, _ := ecs.Get(w, box, component.SlopeControllerComponent.Kind())
	require.Equal(t, traversal.ModeMove, ctrl.LastMode)

	// Tangent of a (0.707, 0.707) normal points down the ramp to +x.
	require.InDelta(t, 0.05*0.7071, ctrl.LastImpulse.X, 1e-3)
	require.InDelta(t, -0.05*0.7071, ctrl.LastImpulse.Y, 1e-3)
}

func TestSlopeControllerJumpOverridesVelocity(t *testing.T) {
	w, box := rampScene(t, 1, 3.4)
	pb, _ := ecs.Get(w, box, component.PhysicsBodyComponent.Kind())
	pb.Body.SetVelocityVector(cp.Vector{X: 3, Y: -2})

	controllerFrame(w, component.Input{MoveX: -1, JumpPressed: true})

	require.Equal(t, cp.Vector{X: 0, Y: 5}, pb.Body.Velocity())
	ctrl, _ := ecs.Get(w, box, component.SlopeControllerComponent.Kind())
	require.Equal(t, traversal.ModeJump, ctrl.LastMode)
}

func TestSlopeControllerCyclesStrategy(t *testing.T) {
	w, box := rampScene(t, 3, 8)
	controllerFrame(w, component.Input{CycleStrategy: true})

	ctrl, _ := ecs.Get(w, box, component.SlopeControllerComponent.Kind())
	require.Equal(t, traversal.StrategyAxis, ctrl.Strategy.Name())

	events := w.Events().Drain()
	require.Len(t, events, 1)
	require.Equal(t, ecs.EventStrategyChanged, events[0].Type)
	evt := events[0].Data.(ecs.ControllerEvent)
	require.Equal(t, box, evt.Entity)
	require.Equal(t, traversal.StrategyAxis, evt.Strategy)

	controllerFrame(w, component.Input{MoveX: 1})
	require.Equal(t, cp.Vector{X: 0.05}, ctrl.LastImpulse)
}

func TestPhysicsSystemSyncsTransforms(t *testing.T) {
	w, box := rampScene(t, 3, 8)
	physics := NewPhysicsSystem(dt)
	for i := 0; i < 30; i++ {
		physics.Update(w)
	}

	transform, _ := ecs.Get(w, box, component.TransformComponent.Kind())
	pb, _ := ecs.Get(w, box, component.PhysicsBodyComponent.Kind())
	require.Less(t, transform.Y, 8.0)
	require.Equal(t, pb.Body.Position().X, transform.X)
	require.Equal(t, pb.Body.Position().Y, transform.Y)
}

func TestPhysicsSystemAfterClose(t *testing.T) {
	w, box := rampScene(t, 3, 8)
	w.PhysicsWorld().Close()

	NewPhysicsSystem(dt).Update(w)
	NewGroundProbeSystem().Update(w)

	transform, _ := ecs.Get(w, box, component.TransformComponent.Kind())
	require.Equal(t, 8.0, transform.Y)
}

func TestBoxSettlesOnSlab(t *testing.T) {
	w, box := rampScene(t, 3, 2.6)
	frame := ecs.NewScheduler(
		NewInputSystem(nil),
		NewGroundProbeSystem(),
		NewSlopeControllerSystem(dt),
		NewPhysicsSystem(dt),
	)
	for i := 0; i < 120; i++ {
		frame.Update(w)
	}

	transform, _ := ecs.Get(w, box, component.TransformComponent.Kind())
	require.InDelta(t, 2.2, transform.Y, 0.02)
	probe, _ := ecs.Get(w, box, component.GroundProbeComponent.Kind())
	require.True(t, probe.Sample.Hit)
	require.InDelta(t, 1.0, probe.Sample.Normal.Y, 1e-3)
}

func TestPlayerStatus(t *testing.T) {
	_, ok := PlayerStatus(ecs.NewWorld())
	require.False(t, ok)

	w, box := rampScene(t, 1, 3.4)
	controllerFrame(w, component.Input{})

	status, ok := PlayerStatus(w)
	require.True(t, ok)
	require.Equal(t, box, status.Entity)
	require.Equal(t, traversal.StrategyTangent, status.Strategy)
	require.Equal(t, traversal.ModeStabilize, status.Mode)
	require.True(t, status.OnSlope)
	require.InDelta(t, 45.0, status.GroundAngle, 1e-3)
	require.Equal(t, cp.Vector{X: 1, Y: 3.4}, status.Position)
}
