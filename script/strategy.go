// Package script runs movement strategies written in tengo.
//
// A script reads dir, nx, ny, vx, vy, mass, move_impulse and move_speed and
// assigns the impulse to ix and iy. Inputs and outputs are predeclared
// globals, so scripts assign them with = rather than :=.
package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampbox/prefabs"
	"github.com/milk9111/rampbox/traversal"
)

var inputs = []string{"dir", "nx", "ny", "vx", "vy", "mass", "move_impulse", "move_speed"}

// Strategy is a traversal.Strategy backed by a compiled tengo script. It
// is not safe for concurrent use.
type Strategy struct {
	name     string
	compiled *tengo.Compiled
	lastErr  error
}

// Load compiles the named script from the prefab scripts directory.
func Load(path string) (*Strategy, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return Compile(prefabs.ScriptName(path), src)
}

// Compile builds a strategy and runs it once on flat ground so scripts
// that fail at runtime are rejected up front.
func Compile(name string, src []byte) (*Strategy, error) {
	s := tengo.NewScript(src)
	for _, in := range inputs {
		if err := s.Add(in, 0.0); err != nil {
			return nil, fmt.Errorf("script: %s: %w", name, err)
		}
	}
	_ = s.Add("ix", 0.0)
	_ = s.Add("iy", 0.0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	st := &Strategy{name: name, compiled: compiled}
	probe := traversal.MoveContext{Dir: 1, Normal: cp.Vector{X: 0, Y: 1}, Mass: 1}
	if _, err := st.eval(probe, traversal.DefaultTuning()); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", name, err)
	}
	return st, nil
}

func (s *Strategy) Name() string {
	return s.name
}

// Impulse runs the script. A failing run yields no impulse and is kept
// for Err.
func (s *Strategy) Impulse(ctx traversal.MoveContext, tuning traversal.Tuning) cp.Vector {
	v, err := s.eval(ctx, tuning)
	s.lastErr = err
	if err != nil {
		return cp.Vector{}
	}
	return v
}

// Err reports the error from the most recent Impulse call.
func (s *Strategy) Err() error {
	return s.lastErr
}

func (s *Strategy) eval(ctx traversal.MoveContext, tuning traversal.Tuning) (cp.Vector, error) {
	values := []float64{
		ctx.Dir,
		ctx.Normal.X, ctx.Normal.Y,
		ctx.Velocity.X, ctx.Velocity.Y,
		ctx.Mass,
		tuning.MoveImpulse,
		tuning.MoveSpeed,
	}
	for i, in := range inputs {
		if err := s.compiled.Set(in, values[i]); err != nil {
			return cp.Vector{}, err
		}
	}
	if err := s.compiled.Set("ix", 0.0); err != nil {
		return cp.Vector{}, err
	}
	if err := s.compiled.Set("iy", 0.0); err != nil {
		return cp.Vector{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return cp.Vector{}, err
	}

	ix, ok := number(s.compiled.Get("ix"))
	if !ok {
		return cp.Vector{}, fmt.Errorf("ix is %s, want a number", s.compiled.Get("ix").ValueType())
	}
	iy, ok := number(s.compiled.Get("iy"))
	if !ok {
		return cp.Vector{}, fmt.Errorf("iy is %s, want a number", s.compiled.Get("iy").ValueType())
	}
	return cp.Vector{X: ix, Y: iy}, nil
}

func number(v *tengo.Variable) (float64, bool) {
	switch v.ValueType() {
	case "float", "int":
		return v.Float(), true
	default:
		return 0, false
	}
}

// Choices returns the built-in strategies followed by one compiled
// strategy per script path.
func Choices(paths []string) ([]traversal.Strategy, error) {
	choices := traversal.Strategies()
	for _, path := range paths {
		st, err := Load(path)
		if err != nil {
			return nil, err
		}
		choices = append(choices, st)
	}
	return choices, nil
}

// Select finds name among choices, defaulting to the tangent strategy for
// an empty name.
func Select(choices []traversal.Strategy, name string) (traversal.Strategy, error) {
	if name == "" {
		name = traversal.StrategyTangent
	}
	for _, c := range choices {
		if strings.EqualFold(c.Name(), strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return traversal.StrategyByName(name)
}
