package traversal

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampbox/common"
)

// DefaultSlopeThreshold is the deviation from vertical, in radians, above
// which a ground normal counts as a slope.
const DefaultSlopeThreshold = 0.1

// SlopeAngle is the signed angle in radians between the normal and the
// vertical axis. A zero normal yields 0.
func SlopeAngle(normal cp.Vector) float64 {
	return math.Atan2(normal.X, normal.Y)
}

// GroundAngle is SlopeAngle in degrees.
func GroundAngle(normal cp.Vector) float64 {
	return common.RadToDeg(SlopeAngle(normal))
}

func IsOnSlope(normal cp.Vector, threshold float64) bool {
	return math.Abs(SlopeAngle(normal)) > threshold
}

// Tangent returns the unit ground direction pointing to +x along the
// surface. Without ground it is the horizontal axis.
func Tangent(normal cp.Vector) cp.Vector {
	if normal.X == 0 && normal.Y == 0 {
		return cp.Vector{X: 1, Y: 0}
	}
	return cp.Vector{X: normal.Y, Y: -normal.X}.Normalize()
}

// TangentialGravity is the component of gravity parallel to the surface.
func TangentialGravity(gravity, normal cp.Vector) cp.Vector {
	if normal.X == 0 && normal.Y == 0 {
		return cp.Vector{}
	}
	n := normal.Normalize()
	return gravity.Sub(n.Mult(gravity.Dot(n)))
}
