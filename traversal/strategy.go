package traversal

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// MoveContext is what a strategy sees when left or right is held.
type MoveContext struct {
	Dir      float64
	Normal   cp.Vector
	Velocity cp.Vector
	Mass     float64
}

// Strategy turns directional input into an impulse.
type Strategy interface {
	Name() string
	Impulse(ctx MoveContext, tuning Tuning) cp.Vector
}

const (
	StrategyTangent  = "tangent"
	StrategyAxis     = "axis"
	StrategyVelocity = "velocity"
)

// TangentImpulse pushes along the ground surface.
type TangentImpulse struct{}

func (TangentImpulse) Name() string { return StrategyTangent }

func (TangentImpulse) Impulse(ctx MoveContext, tuning Tuning) cp.Vector {
	return Tangent(ctx.Normal).Mult(ctx.Dir * tuning.MoveImpulse)
}

// AxisImpulse pushes horizontally regardless of the ground.
type AxisImpulse struct{}

func (AxisImpulse) Name() string { return StrategyAxis }

func (AxisImpulse) Impulse(ctx MoveContext, tuning Tuning) cp.Vector {
	return cp.Vector{X: ctx.Dir * tuning.MoveImpulse}
}

// VelocityImpulse drives horizontal velocity to Dir*MoveSpeed in one step
// and leaves vertical velocity alone.
type VelocityImpulse struct{}

func (VelocityImpulse) Name() string { return StrategyVelocity }

func (VelocityImpulse) Impulse(ctx MoveContext, tuning Tuning) cp.Vector {
	desired := cp.Vector{X: ctx.Dir * tuning.MoveSpeed, Y: ctx.Velocity.Y}
	return desired.Sub(ctx.Velocity).Mult(ctx.Mass)
}

var strategies = []Strategy{TangentImpulse{}, AxisImpulse{}, VelocityImpulse{}}

func Strategies() []Strategy {
	return append([]Strategy(nil), strategies...)
}

func StrategyByName(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return TangentImpulse{}, nil
	}
	for _, s := range strategies {
		if s.Name() == key {
			return s, nil
		}
	}
	return nil, fmt.Errorf("traversal: unknown strategy %q", name)
}

// NextStrategy cycles through the built-in strategies.
func NextStrategy(s Strategy) Strategy {
	return Cycle(strategies, s)
}

// Cycle returns the entry after s in choices, matching by name. It wraps
// around and falls back to the first entry when s is not listed.
func Cycle(choices []Strategy, s Strategy) Strategy {
	if len(choices) == 0 {
		return s
	}
	if s == nil {
		return choices[0]
	}
	for i, candidate := range choices {
		if candidate.Name() == s.Name() {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}
