// Package incline computes the force needed to hold a body still on a
// frictionless incline.
package incline

import (
	"math"
	"strconv"
	"strings"

	"github.com/milk9111/rampbox/common"
)

// Params are the calculator inputs: mass in kg, angle in degrees.
type Params struct {
	Mass     float64
	AngleDeg float64
}

// Force is a 2D force in newtons.
type Force struct {
	X float64
	Y float64
}

// RequiredForce returns the components that counter gravity along and
// perpendicular to the incline. Fx is negative for positive angles.
func RequiredForce(p Params) Force {
	rad := common.DegToRad(p.AngleDeg)
	return Force{
		X: -p.Mass * common.Gravity * math.Sin(rad),
		Y: p.Mass * common.Gravity * math.Cos(rad),
	}
}

func FormatResult(f Force) string {
	return "Fuerza requerida en la rampa (x, y): (" + formatNewtons(f.X) + " N, " + formatNewtons(f.Y) + " N)"
}

// formatNewtons prints a float the way a JVM double prints: always a
// fractional part, E notation outside [1e-3, 1e7).
func formatNewtons(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	s := strconv.FormatFloat(v, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(exp, "+-")
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}
	return mantissa + "E" + exp
}
