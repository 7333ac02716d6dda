package wind

import (
	"fmt"
	"math"
)

// Sector is the downwind wedge for one category. Start and End are each
// wrapped into [0,360) independently, so Start > End when the wedge crosses
// north.
type Sector struct {
	Downwind    float64
	Start       float64
	End         float64
	Uncertainty float64
}

// Normalize wraps deg into [0,360).
func Normalize(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	if r >= 360 { // -tiny + 360 rounds up
		r = 0
	}
	return r
}

// Reciprocal returns the bearing opposite deg.
func Reciprocal(deg float64) float64 {
	return Normalize(deg + 180)
}

// Downwind builds the sector centred on the reciprocal of meanDirection with
// the given half-width in degrees. A NaN direction yields a NaN sector.
func Downwind(meanDirection, uncertainty float64) Sector {
	d := Reciprocal(meanDirection)
	return Sector{
		Downwind:    d,
		Start:       Normalize(d - uncertainty),
		End:         Normalize(d + uncertainty),
		Uncertainty: uncertainty,
	}
}

// Valid reports whether the sector was computed from a finite direction.
func (s Sector) Valid() bool {
	return !math.IsNaN(s.Downwind) && !math.IsInf(s.Downwind, 0)
}

// Width is the angular span from Start clockwise to End. It equals
// 2*Uncertainty for any half-width below 180.
func (s Sector) Width() float64 {
	return Normalize(s.End - s.Start)
}

// Crosses reports whether the wedge spans north (Start > End after wrapping).
func (s Sector) Crosses() bool {
	return s.Start > s.End
}

// Sweep returns n angles evenly spaced from Start to End. The raw values are
// interpolated as-is: a sector crossing north sweeps back through south
// instead of across 0°. Consumers drawing the wedge rely on that ordering.
func (s Sector) Sweep(n int) []float64 {
	return linspace(s.Start, s.End, n)
}

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Polygon projects the sweep onto a circle of radius degrees around site,
// with north along latitude and east along longitude.
func (s Sector) Polygon(site Site, radius float64, n int) []Point {
	angles := s.Sweep(n)
	pts := make([]Point, len(angles))
	for i, a := range angles {
		r := a * math.Pi / 180
		pts[i] = Point{
			Lat: site.Lat + radius*math.Cos(r),
			Lon: site.Lon + radius*math.Sin(r),
		}
	}
	return pts
}

func (s Sector) String() string {
	if !s.Valid() {
		return "no downwind sector (no observations)"
	}
	return fmt.Sprintf("downwind %.0f° (%.0f°–%.0f°, ±%.0f°)", s.Downwind, s.Start, s.End, s.Uncertainty)
}

func linspace(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = end
	return out
}
