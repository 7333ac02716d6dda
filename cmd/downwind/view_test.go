package downwind

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumwatshade/winddash/cmd/report"
	"github.com/sumwatshade/winddash/cmd/wind"
)

func build(t *testing.T, c wind.Category) *report.Model {
	t.Helper()
	ds, err := wind.ReadCSV(strings.NewReader("time,wind_speed,wind_direction\n2024-01-01T07:00:00,3.0,90.0\n"))
	require.NoError(t, err)
	o := report.DefaultOptions()
	o.Category = c
	m, err := report.Build(ds, o)
	require.NoError(t, err)
	return m
}

func TestViewDrawsSector(t *testing.T) {
	out := View(build(t, wind.Morning), 40, 12)
	assert.Contains(t, out, "Wind Measurement Point")
	assert.Contains(t, out, "◉")
}

func TestViewEmptyCategory(t *testing.T) {
	out := View(build(t, wind.Evening), 40, 12)
	assert.Contains(t, out, "no downwind sector")
	assert.NotContains(t, out, "Wind Measurement Point")
}
