package mathutil

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// SpinRotation returns the orientation of a model p of the way through a
// spin that sweeps yawTurns full turns about X and pitchTurns about Y.
func SpinRotation(p, yawTurns, pitchTurns float64) Quat {
	return QuatFromEuler(p*yawTurns*2*math.Pi, p*pitchTurns*2*math.Pi, 0)
}
