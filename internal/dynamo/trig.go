package dynamo

import "math"

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// JitterAngle maps a uniform sample u in [0,1) onto (-limit, +limit) degrees.
// With limit 5 this is u*10 - 5.
func JitterAngle(u, limit float64) float64 {
	return u*2*limit - limit
}

// AngleBetween returns the unsigned angle between a and b in degrees.
// Zero vectors yield 0.
func AngleBetween(a, b Vec2) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	c := (a.X*b.X + a.Y*b.Y) / (la * lb)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return Degrees(math.Acos(c))
}
