package traversal

import (
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultProbeReach extrapolates the probe to twice the corner offset.
const DefaultProbeReach = 2.0

type Corner int

const (
	CornerLeft Corner = iota
	CornerRight
)

func (c Corner) String() string {
	if c == CornerRight {
		return "right"
	}
	return "left"
}

// RayHit is the first surface hit by a probe. Normal is zero when Hit is
// false.
type RayHit struct {
	Normal cp.Vector
	Point  cp.Vector
	Hit    bool
}

// RayCaster answers synchronous first-hit queries against the physics world.
type RayCaster interface {
	RayCast(start, end cp.Vector) RayHit
}

// Sample is one frame's ground probe.
type Sample struct {
	Start  cp.Vector
	End    cp.Vector
	Normal cp.Vector
	Hit    bool
}

// ProbeSegment returns the ray from the body center through its lower
// corner, scaled by reach. ok is false when the endpoint would not clear
// the body's bounding radius.
func ProbeSegment(center cp.Vector, halfW, halfH, reach float64, corner Corner) (start, end cp.Vector, ok bool) {
	offset := cp.Vector{X: -halfW, Y: -halfH}
	if corner == CornerRight {
		offset.X = halfW
	}
	end = center.Add(offset.Mult(reach))

	radius := math.Hypot(halfW, halfH)
	if end.Distance(center) <= radius {
		return center, end, false
	}
	return center, end, true
}

// SampleGround probes below the body and reports the surface normal.
func SampleGround(rc RayCaster, center cp.Vector, halfW, halfH, reach float64, corner Corner) Sample {
	start, end, ok := ProbeSegment(center, halfW, halfH, reach, corner)
	s := Sample{Start: start, End: end}
	if !ok || rc == nil {
		return s
	}
	hit := rc.RayCast(start, end)
	if !hit.Hit {
		return s
	}
	s.Normal = hit.Normal
	s.Hit = true
	return s
}
