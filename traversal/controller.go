package traversal

import "github.com/jakecoffman/cp"

// Tuning holds the controller's fixed magnitudes.
type Tuning struct {
	MoveImpulse    float64
	MoveSpeed      float64
	JumpSpeed      float64
	SlopeThreshold float64
	ProbeReach     float64
}

func DefaultTuning() Tuning {
	return Tuning{
		MoveImpulse:    0.05,
		MoveSpeed:      1.0,
		JumpSpeed:      5.0,
		SlopeThreshold: DefaultSlopeThreshold,
		ProbeReach:     DefaultProbeReach,
	}
}

// Body is the subset of a rigid body the controller drives. *cp.Body
// satisfies it.
type Body interface {
	Position() cp.Vector
	Velocity() cp.Vector
	SetVelocityVector(v cp.Vector)
	Mass() float64
	ApplyImpulseAtWorldPoint(impulse, point cp.Vector)
}

type Mode int

const (
	ModeIdle Mode = iota
	ModeMove
	ModeStabilize
	ModeJump
)

func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeStabilize:
		return "stabilize"
	case ModeJump:
		return "jump"
	default:
		return "idle"
	}
}

// Frame is one tick of controller input.
type Frame struct {
	MoveX       float64
	JumpPressed bool
	Normal      cp.Vector
	Gravity     cp.Vector
	Dt          float64
}

// Action is what the controller decided for a frame.
type Action struct {
	Mode     Mode
	Impulse  cp.Vector
	Velocity cp.Vector
}

// Decide picks the frame's mode. Jump wins over movement, movement wins
// over stabilization.
func Decide(s Strategy, tuning Tuning, f Frame, vel cp.Vector, mass float64) Action {
	if f.JumpPressed {
		return Action{Mode: ModeJump, Velocity: cp.Vector{X: 0, Y: tuning.JumpSpeed}}
	}

	if f.MoveX != 0 {
		if s == nil {
			s = TangentImpulse{}
		}
		dir := 1.0
		if f.MoveX < 0 {
			dir = -1.0
		}
		impulse := s.Impulse(MoveContext{Dir: dir, Normal: f.Normal, Velocity: vel, Mass: mass}, tuning)
		return Action{Mode: ModeMove, Impulse: impulse}
	}

	if IsOnSlope(f.Normal, tuning.SlopeThreshold) {
		slide := TangentialGravity(f.Gravity, f.Normal)
		return Action{Mode: ModeStabilize, Impulse: slide.Mult(-mass * f.Dt)}
	}

	return Action{Mode: ModeIdle}
}

// Apply writes an action to the body.
func Apply(b Body, a Action) {
	if b == nil {
		return
	}
	switch a.Mode {
	case ModeJump:
		b.SetVelocityVector(a.Velocity)
	case ModeMove, ModeStabilize:
		if a.Impulse.X == 0 && a.Impulse.Y == 0 {
			return
		}
		b.ApplyImpulseAtWorldPoint(a.Impulse, b.Position())
	}
}
