package wind

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryForHourPartitionsDay(t *testing.T) {
	counts := map[Category]int{}
	for h := 0; h < 24; h++ {
		c, ok := CategoryForHour(h)
		require.True(t, ok, "hour %d", h)
		counts[c]++
	}
	require.Len(t, counts, 4)
	for _, c := range Categories {
		assert.Equal(t, 6, counts[c], c)
	}

	tests := []struct {
		hour int
		want Category
	}{
		{0, EarlyMorning},
		{5, EarlyMorning},
		{6, Morning},
		{11, Morning},
		{12, Afternoon},
		{17, Afternoon},
		{18, Evening},
		{23, Evening},
	}
	for _, tt := range tests {
		got, ok := CategoryForHour(tt.hour)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "hour %d", tt.hour)
	}

	for _, h := range []int{-1, 24, 25} {
		_, ok := CategoryForHour(h)
		assert.False(t, ok, "hour %d", h)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" afternoon ")
	require.NoError(t, err)
	assert.Equal(t, Afternoon, c)
	assert.Equal(t, 2, c.Index())

	_, err = ParseCategory("Night")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestReadCSVSingleRowScenario(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("time,wind_speed,wind_direction\n2024-01-01T07:00:00,3.0,90.0\n"))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())

	o := ds.Observations[0]
	assert.Equal(t, Morning, o.Category)
	assert.Equal(t, 7, o.Hour)
	assert.Equal(t, time.January, o.Month)
	assert.Equal(t, 2024, o.Year)

	aggs := ByCategory(ds.Observations)
	require.Len(t, aggs, 4)
	m, ok := Lookup(aggs, Morning)
	require.True(t, ok)
	assert.Equal(t, 90.0, m.MeanDirection)
	assert.Equal(t, 3.0, m.MeanSpeed)
	assert.Equal(t, 1, m.Count)

	s := Downwind(m.MeanDirection, 15)
	assert.Equal(t, 270.0, s.Downwind)
	assert.Equal(t, 255.0, s.Start)
	assert.Equal(t, 285.0, s.End)
}

func TestReadCSVMissingColumns(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		col  string
	}{
		{"time", "timestamp,wind_speed,wind_direction\n2024-01-01T07:00:00,3,90\n", "time"},
		{"speed", "time,speed,wind_direction\n2024-01-01T07:00:00,3,90\n", "wind_speed"},
		{"direction", "time,wind_speed,dir\n2024-01-01T07:00:00,3,90\n", "wind_direction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ReadCSV(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.ErrorIs(t, err, ErrMissingColumn)
			assert.Contains(t, err.Error(), tt.col)
		})
	}
}

func TestReadCSVIgnoresExtraColumnsAndKeepsNaN(t *testing.T) {
	csv := "station,time,wind_speed,wind_direction\n" +
		"A,2024-01-01 19:30:00,4.5,200\n" +
		"A,2024-01-02T01:00:00Z,,180\n"
	ds, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, Evening, ds.Observations[0].Category)
	assert.Equal(t, EarlyMorning, ds.Observations[1].Category)
	assert.True(t, math.IsNaN(ds.Observations[1].Speed))
}

func TestReadCSVTrimsSpacedHeader(t *testing.T) {
	csv := "time, wind_speed, wind_direction\n" +
		"2024-01-01T07:00:00, 3.0, 90\n" +
		"2024-01-01T08:00:00, 5.0, 100\n"
	ds, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, 3.0, ds.Observations[0].Speed)
	assert.Equal(t, 100.0, ds.Observations[1].Direction)

	_, err = ReadCSV(strings.NewReader("time, speed, wind_direction\n2024-01-01T07:00:00,3,90\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestBlankCellsAreSkippedByMeans(t *testing.T) {
	csv := "time,wind_speed,wind_direction\n" +
		"2024-01-01T07:00:00,3.0,90\n" +
		"2024-01-01T08:00:00,,100\n" +
		"2024-01-01T09:00:00,5.0,\n"
	ds, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	m, ok := Lookup(ByCategory(ds.Observations), Morning)
	require.True(t, ok)
	assert.Equal(t, 4.0, m.MeanSpeed)
	assert.Equal(t, 95.0, m.MeanDirection)
	assert.Equal(t, 3, m.Count)

	c, ok := Lookup(AggregateWith(ds.Observations, CircularMean), Morning)
	require.True(t, ok)
	assert.InDelta(t, 95.0, c.MeanDirection, 1e-9)

	assert.True(t, math.IsNaN(ArithmeticMean([]float64{math.NaN()})))
	assert.True(t, math.IsNaN(CircularMean([]float64{math.NaN()})))
}

func TestReadCSVMalformedTimestamp(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("time,wind_speed,wind_direction\n2024-01-01T07:00:00,3,90\nyesterday,2,10\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedTimestamp)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseTimestampLayouts(t *testing.T) {
	want := time.Date(2024, 3, 5, 14, 20, 0, 0, time.UTC)
	for _, s := range []string{
		"2024-03-05T14:20:00",
		"2024-03-05 14:20:00",
		"2024-03-05T14:20:00Z",
		"2024-03-05T14:20",
		"2024-03-05 14:20",
	} {
		got, err := ParseTimestamp(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), "%s parsed as %s", s, got)
	}
	_, err := ParseTimestamp("  ")
	assert.ErrorIs(t, err, ErrMalformedTimestamp)
}

func TestFileServiceMissingFile(t *testing.T) {
	svc := NewFileService(filepath.Join(t.TempDir(), "nope.csv"))
	ds, err := svc.Load()
	assert.Nil(t, ds)
	assert.ErrorIs(t, err, ErrMissingFile)
	assert.Contains(t, ErrorText(err), "The file was not found")
}

func TestFileServiceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wind.csv")
	require.NoError(t, os.WriteFile(path, []byte("time,wind_speed,wind_direction\n2024-06-01T13:00:00,5,45\n"), 0o644))

	ds, err := NewFileService(path).Load()
	require.NoError(t, err)
	assert.Equal(t, path, ds.Source)
	assert.Equal(t, Afternoon, ds.Observations[0].Category)
}

func TestAggregateAlwaysFourRecords(t *testing.T) {
	obs := []Observation{
		NewObservation(time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC), 2, 100),
		NewObservation(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC), 4, 200),
		NewObservation(time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC), 6, 300),
	}
	aggs := ByCategory(obs)
	require.Len(t, aggs, 4)
	for i, c := range Categories {
		assert.Equal(t, c, aggs[i].Category)
	}

	assert.Equal(t, 150.0, aggs[0].MeanDirection)
	assert.Equal(t, 3.0, aggs[0].MeanSpeed)
	assert.Equal(t, 2, aggs[0].Count)

	assert.Equal(t, 0, aggs[1].Count)
	assert.True(t, math.IsNaN(aggs[1].MeanDirection))
	assert.True(t, math.IsNaN(aggs[1].MeanSpeed))

	assert.Equal(t, 6.0, MaxSpeed(aggs))
	assert.Len(t, ByCategory(nil), 4)
}

func TestArithmeticMeanKeepsWrapDefect(t *testing.T) {
	assert.Equal(t, 180.0, ArithmeticMean([]float64{350, 10}))

	c := CircularMean([]float64{350, 10})
	assert.InDelta(t, 0, c, 1e-9)
	assert.True(t, c >= 0 && c < 360)
	assert.True(t, math.IsNaN(CircularMean(nil)))
	assert.True(t, math.IsNaN(CircularMean([]float64{0, 180})))
}

func TestDirectionMeanByName(t *testing.T) {
	f, err := DirectionMeanByName("Circular")
	require.NoError(t, err)
	assert.InDelta(t, 90, f([]float64{80, 100}), 1e-9)

	f, err = DirectionMeanByName("")
	require.NoError(t, err)
	assert.Equal(t, 180.0, f([]float64{350, 10}))

	_, err = DirectionMeanByName("median")
	assert.Error(t, err)
}

func TestDownwindInRangeAndSymmetric(t *testing.T) {
	for _, u := range []float64{15, 30} {
		for d := -720.0; d <= 720; d += 7.5 {
			s := Downwind(d, u)
			assert.True(t, s.Downwind >= 0 && s.Downwind < 360, "downwind %v for %v", s.Downwind, d)
			assert.True(t, s.Start >= 0 && s.Start < 360)
			assert.True(t, s.End >= 0 && s.End < 360)
			assert.InDelta(t, 2*u, s.Width(), 1e-9, "direction %v", d)
		}
	}
}

func TestDownwindCrossingNorthSweepsBackwards(t *testing.T) {
	s := Downwind(175, 15) // downwind 355, wedge 340..10
	assert.Equal(t, 355.0, s.Downwind)
	assert.Equal(t, 340.0, s.Start)
	assert.Equal(t, 10.0, s.End)
	assert.True(t, s.Crosses())

	sweep := s.Sweep(5)
	require.Len(t, sweep, 5)
	assert.Equal(t, []float64{340, 257.5, 175, 92.5, 10}, sweep)
}

func TestDownwindNaN(t *testing.T) {
	s := Downwind(math.NaN(), 15)
	assert.False(t, s.Valid())
	assert.Contains(t, s.String(), "no downwind sector")
}

func TestSectorPolygon(t *testing.T) {
	s := Downwind(270, 15) // downwind east
	pts := s.Polygon(DefaultSite, 0.1, 100)
	require.Len(t, pts, 100)
	mid := s.Polygon(DefaultSite, 0.1, 3)[1]
	assert.InDelta(t, DefaultSite.Lat, mid.Lat, 1e-9)
	assert.InDelta(t, DefaultSite.Lon+0.1, mid.Lon, 1e-9)
	assert.Empty(t, s.Sweep(0))
	assert.Equal(t, []float64{s.Start}, s.Sweep(1))
}

func TestCompass(t *testing.T) {
	assert.Equal(t, "N", Compass(0))
	assert.Equal(t, "N", Compass(355))
	assert.Equal(t, "E", Compass(90))
	assert.Equal(t, "SSE", Compass(153))
	assert.Equal(t, "S", Compass(184))
	assert.Equal(t, "-", Compass(math.NaN()))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(360))
	assert.Equal(t, 350.0, Normalize(-10))
	assert.Equal(t, 0.0, Normalize(-1e-15))
	assert.Equal(t, 90.0, Reciprocal(270))
}
