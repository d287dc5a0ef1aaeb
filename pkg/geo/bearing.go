package geo

import "math"

// Bearings follow map convention: degrees measured clockwise from the +Y axis
// ("north"), so bearing 0 points up, 90 points right (+X), 180 down, 270 left.

// Bearing returns the compass bearing from one point toward another, in
// degrees normalized to [0, 360).
func Bearing(from, to Point2D) float64 {
	d := to.Sub(from)
	deg := math.Atan2(d.X, d.Y) * 180 / math.Pi
	return NormalizeBearing(deg)
}

// Destination returns the point reached by traveling the given distance from
// origin along a compass bearing in degrees. It is the planar inverse of
// Bearing: Bearing(origin, Destination(origin, d, b)) == b for d > 0.
func Destination(origin Point2D, distance, bearingDeg float64) Point2D {
	rad := bearingDeg * math.Pi / 180
	return Point2D{
		X: origin.X + distance*math.Sin(rad),
		Y: origin.Y + distance*math.Cos(rad),
	}
}

// NormalizeBearing maps an angle in degrees onto [0, 360).
func NormalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
