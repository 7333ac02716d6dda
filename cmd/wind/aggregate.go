package wind

import (
	"fmt"
	"math"
	"strings"
)

// DirectionMean averages a set of bearings in degrees.
type DirectionMean func(dirs []float64) float64

// ArithmeticMean averages bearings as plain numbers. It ignores the 0/360
// wrap, so 350 and 10 average to 180. The reference summary table was built
// this way, which is why it stays the default.
func ArithmeticMean(dirs []float64) float64 {
	return mean(dirs)
}

// CircularMean averages bearings as unit vectors and returns a result in
// [0,360). NaN bearings are skipped. It returns NaN when nothing finite
// remains or when the vectors cancel out.
func CircularMean(dirs []float64) float64 {
	var sx, sy float64
	n := 0
	for _, d := range dirs {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		n++
		r := d * math.Pi / 180
		sx += math.Sin(r)
		sy += math.Cos(r)
	}
	if n == 0 || (math.Abs(sx) < 1e-12 && math.Abs(sy) < 1e-12) {
		return math.NaN()
	}
	return Normalize(math.Atan2(sx, sy) * 180 / math.Pi)
}

// DirectionMeanByName resolves the aggregate.direction_mean setting.
func DirectionMeanByName(name string) (DirectionMean, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "arithmetic":
		return ArithmeticMean, nil
	case "circular":
		return CircularMean, nil
	}
	return nil, fmt.Errorf("unknown direction mean %q (want arithmetic or circular)", name)
}

// ByCategory computes one record per category, in category order, using the
// arithmetic direction mean.
func ByCategory(obs []Observation) []Aggregate {
	return AggregateWith(obs, ArithmeticMean)
}

// AggregateWith is ByCategory with a pluggable direction mean. The result
// always has len(Categories) records.
func AggregateWith(obs []Observation, dirMean DirectionMean) []Aggregate {
	if dirMean == nil {
		dirMean = ArithmeticMean
	}
	groups := GroupByCategory(obs)
	out := make([]Aggregate, 0, len(Categories))
	for _, c := range Categories {
		g := groups[c]
		speeds := make([]float64, len(g))
		dirs := make([]float64, len(g))
		for i, o := range g {
			speeds[i] = o.Speed
			dirs[i] = o.Direction
		}
		out = append(out, Aggregate{
			Category:      c,
			MeanDirection: dirMean(dirs),
			MeanSpeed:     mean(speeds),
			Count:         len(g),
		})
	}
	return out
}

// Lookup returns the record for c.
func Lookup(aggs []Aggregate, c Category) (Aggregate, bool) {
	for _, a := range aggs {
		if a.Category == c {
			return a, true
		}
	}
	return Aggregate{}, false
}

// MaxSpeed is the largest finite mean speed, or 0.
func MaxSpeed(aggs []Aggregate) float64 {
	m := 0.0
	for _, a := range aggs {
		if !math.IsNaN(a.MeanSpeed) && a.MeanSpeed > m {
			m = a.MeanSpeed
		}
	}
	return m
}

// mean skips NaN values; it is NaN only when no finite value remains.
func mean(vs []float64) float64 {
	var sum float64
	n := 0
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
