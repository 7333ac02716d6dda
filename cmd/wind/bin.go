package wind

import "time"

// CategoryForHour maps an hour of day onto its bucket using the half-open
// ranges in HourEdges. ok is false for hours outside [0,24).
func CategoryForHour(h int) (c Category, ok bool) {
	for i := 0; i < len(HourEdges)-1; i++ {
		if h >= HourEdges[i] && h < HourEdges[i+1] {
			return Categories[i], true
		}
	}
	return "", false
}

// NewObservation derives hour, month, year and category from ts.
func NewObservation(ts time.Time, speed, direction float64) Observation {
	c, _ := CategoryForHour(ts.Hour()) // Hour() is always 0-23
	return Observation{
		Time:      ts,
		Speed:     speed,
		Direction: direction,
		Hour:      ts.Hour(),
		Month:     ts.Month(),
		Year:      ts.Year(),
		Category:  c,
	}
}

// GroupByCategory buckets observations in category order. Every category is
// present in the result, possibly with an empty slice.
func GroupByCategory(obs []Observation) map[Category][]Observation {
	out := make(map[Category][]Observation, len(Categories))
	for _, c := range Categories {
		out[c] = nil
	}
	for _, o := range obs {
		out[o.Category] = append(out[o.Category], o)
	}
	return out
}
