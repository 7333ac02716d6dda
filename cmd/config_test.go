package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumwatshade/winddash/cmd/wind"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, wind.DefaultDataPath, cfg.Data.Path)
	assert.Equal(t, 15.0, cfg.Downwind.Uncertainty)
	assert.Equal(t, 100, cfg.Downwind.Points)
	assert.Equal(t, ":8080", cfg.Serve.Addr)

	o := cfg.reportOptions()
	assert.Equal(t, wind.EarlyMorning, o.Category)
	assert.Equal(t, wind.SeriesNames, o.Series)
	assert.Equal(t, wind.DefaultSite, o.Site)
	assert.InDelta(t, 180.0, o.DirectionMean([]float64{350, 10}), 1e-9)
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winddash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  path: /tmp/wind.csv
downwind:
  uncertainty: 30
aggregate:
  direction_mean: circular
ui:
  category: afternoon
  series: [direction]
`), 0o644))

	v := newTestViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wind.csv", cfg.Data.Path)

	o := cfg.reportOptions()
	assert.Equal(t, 30.0, o.Uncertainty)
	assert.Equal(t, wind.Afternoon, o.Category)
	assert.Equal(t, []string{wind.SeriesDirection}, o.Series)
	assert.InDelta(t, 0.0, o.DirectionMean([]float64{350, 10}), 1e-9)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("WINDDASH_DOWNWIND_UNCERTAINTY", "20")
	t.Setenv("WINDDASH_UI_CATEGORY", "Evening")

	v := newTestViper()
	v.SetEnvPrefix("WINDDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Downwind.Uncertainty)
	assert.Equal(t, string(wind.Evening), cfg.UI.Category)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"empty data path", "data.path", " "},
		{"negative uncertainty", "downwind.uncertainty", -1.0},
		{"uncertainty too wide", "downwind.uncertainty", 180.0},
		{"zero radius", "downwind.radius", 0.0},
		{"one point", "downwind.points", 1},
		{"latitude", "site.lat", 91.0},
		{"longitude", "site.lon", -181.0},
		{"direction mean", "aggregate.direction_mean", "median"},
		{"category", "ui.category", "Night"},
		{"series", "ui.series", []string{"Gusts"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViper()
			v.Set(tt.key, tt.value)
			_, err := loadConfig(v)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winddash.log")
	logger, closeLog, err := newLogger("debug", path, nil)
	require.NoError(t, err)
	logger.Debug("hello", "k", "v")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "k=v")

	_, _, err = newLogger("loud", "", nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
