package common

import "math"

// Gravity is the standard gravitational acceleration in m/s².
const Gravity = 9.8

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
