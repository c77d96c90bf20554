package common

import (
	"math"
	"testing"
)

func TestDegRadRoundTrip(t *testing.T) {
	cases := []struct {
		deg float64
		rad float64
	}{
		{0, 0},
		{30, math.Pi / 6},
		{90, math.Pi / 2},
		{-45, -math.Pi / 4},
	}
	for _, c := range cases {
		if got := DegToRad(c.deg); math.Abs(got-c.rad) > 1e-12 {
			t.Fatalf("DegToRad(%v) = %v, want %v", c.deg, got, c.rad)
		}
		if got := RadToDeg(c.rad); math.Abs(got-c.deg) > 1e-9 {
			t.Fatalf("RadToDeg(%v) = %v, want %v", c.rad, got, c.deg)
		}
	}
}

func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{false, true} {
		logger, err := NewLogger(debug)
		if err != nil {
			t.Fatalf("NewLogger(%v): %v", debug, err)
		}
		if logger == nil {
			t.Fatalf("NewLogger(%v) returned nil logger", debug)
		}
	}
}
