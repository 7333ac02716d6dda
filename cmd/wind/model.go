package wind

import (
	"fmt"
	"strings"
	"time"
)

// Category is one of the four fixed day-part buckets.
type Category string

const (
	EarlyMorning Category = "Early Morning"
	Morning      Category = "Morning"
	Afternoon    Category = "Afternoon"
	Evening      Category = "Evening"
)

// Categories lists the day parts in bin order.
var Categories = []Category{EarlyMorning, Morning, Afternoon, Evening}

// HourEdges are the left-closed bin edges for Categories. The final edge
// closes the last bin; hour 24 never occurs.
var HourEdges = []int{0, 6, 12, 18, 24}

// Index returns the position of c in Categories, or -1.
func (c Category) Index() int {
	for i, v := range Categories {
		if v == c {
			return i
		}
	}
	return -1
}

// ParseCategory matches a label case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Observation is one CSV row plus the fields derived from its timestamp.
type Observation struct {
	Time      time.Time
	Speed     float64 // m/s
	Direction float64 // degrees, 0-360
	Hour      int
	Month     time.Month
	Year      int
	Category  Category
}

// Dataset holds the observations read from a single source file.
type Dataset struct {
	Source       string
	Observations []Observation
}

// Len reports the number of observations.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Observations)
}

// TimeRange returns the earliest and latest observation times.
func (d *Dataset) TimeRange() (time.Time, time.Time) {
	var minT, maxT time.Time
	if d == nil {
		return minT, maxT
	}
	for i, o := range d.Observations {
		if i == 0 || o.Time.Before(minT) {
			minT = o.Time
		}
		if i == 0 || o.Time.After(maxT) {
			maxT = o.Time
		}
	}
	return minT, maxT
}

// Aggregate is the per-category mean of direction and speed. Count is zero
// (and both means NaN) when no observation fell in the category.
type Aggregate struct {
	Category      Category
	MeanDirection float64
	MeanSpeed     float64
	Count         int
}

// Site is the measurement location.
type Site struct {
	Lat float64
	Lon float64
}

// DefaultSite is the location encoded in the default data file name.
var DefaultSite = Site{Lat: 42.872028, Lon: -82.120731}

// DefaultDataPath is the data file the dashboard reads when none is configured.
const DefaultDataPath = "concatenated_wind_data_42.872028_-82.120731.csv"
