package component

import "github.com/milk9111/rampbox/traversal"

// GroundProbe holds the ray cast under a body this frame.
type GroundProbe struct {
	Corner traversal.Corner
	Reach  float64
	Sample traversal.Sample
}

var GroundProbeComponent = NewComponent[GroundProbe]()
