package wind

import "math"

// CompassPoints are the 16 named bearings, clockwise from north.
var CompassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassIndex returns the index into CompassPoints nearest to deg, or -1
// for NaN.
func CompassIndex(deg float64) int {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return -1
	}
	step := 360.0 / float64(len(CompassPoints))
	return int(math.Floor(Normalize(deg)/step+0.5)) % len(CompassPoints)
}

// Compass returns the named bearing nearest to deg.
func Compass(deg float64) string {
	i := CompassIndex(deg)
	if i < 0 {
		return "-"
	}
	return CompassPoints[i]
}
