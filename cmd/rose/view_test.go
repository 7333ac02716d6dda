package rose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumwatshade/winddash/cmd/report"
	"github.com/sumwatshade/winddash/cmd/wind"
)

func TestViewListsEveryCategory(t *testing.T) {
	ds, err := wind.ReadCSV(strings.NewReader("time,wind_speed,wind_direction\n2024-01-01T07:00:00,3.0,90.0\n"))
	require.NoError(t, err)
	o := report.DefaultOptions()
	o.Category = wind.Morning
	m, err := report.Build(ds, o)
	require.NoError(t, err)

	out := View(m, 40, 12)
	assert.Contains(t, out, "Wind Direction Shift by Time of Day")
	for _, c := range wind.Categories {
		assert.Contains(t, out, string(c))
	}
	assert.Contains(t, out, "no observations")
	assert.Contains(t, out, "n=1")
}

func TestViewNilModel(t *testing.T) {
	assert.Contains(t, View(nil, 40, 12), "No data")
}
