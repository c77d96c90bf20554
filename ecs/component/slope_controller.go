package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampbox/traversal"
)

type SlopeController struct {
	Strategy traversal.Strategy
	// Choices is the cycle order for runtime switching. Empty means the
	// built-in strategies.
	Choices []traversal.Strategy
	Tuning  traversal.Tuning

	LastMode    traversal.Mode
	LastImpulse cp.Vector
}

var SlopeControllerComponent = NewComponent[SlopeController]()
