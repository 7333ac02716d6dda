package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/sumwatshade/winddash/cmd/report"
	"github.com/sumwatshade/winddash/cmd/wind"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config mirrors the keys in $HOME/.winddash.yaml.
type Config struct {
	Data struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"data"`
	Site struct {
		Lat float64 `mapstructure:"lat"`
		Lon float64 `mapstructure:"lon"`
	} `mapstructure:"site"`
	Downwind struct {
		Uncertainty float64 `mapstructure:"uncertainty"`
		Radius      float64 `mapstructure:"radius"`
		Points      int     `mapstructure:"points"`
	} `mapstructure:"downwind"`
	Aggregate struct {
		DirectionMean string `mapstructure:"direction_mean"`
	} `mapstructure:"aggregate"`
	UI struct {
		Category string   `mapstructure:"category"`
		Series   []string `mapstructure:"series"`
	} `mapstructure:"ui"`
	Render struct {
		Backend string `mapstructure:"backend"`
		Out     string `mapstructure:"out"`
	} `mapstructure:"render"`
	Serve struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"serve"`
	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`
}

// setDefaults registers every key so AutomaticEnv can resolve it and
// Unmarshal sees a complete tree.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data.path", wind.DefaultDataPath)
	v.SetDefault("site.lat", wind.DefaultSite.Lat)
	v.SetDefault("site.lon", wind.DefaultSite.Lon)
	v.SetDefault("downwind.uncertainty", 15.0)
	v.SetDefault("downwind.radius", 0.1)
	v.SetDefault("downwind.points", 100)
	v.SetDefault("aggregate.direction_mean", "arithmetic")
	v.SetDefault("ui.category", string(wind.EarlyMorning))
	v.SetDefault("ui.series", wind.SeriesNames)
	v.SetDefault("render.backend", report.BackendECharts)
	v.SetDefault("render.out", ".")
	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// loadConfig unmarshals and validates the current viper state.
func loadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Data.Path) == "" {
		return fmt.Errorf("%w: data.path is empty", ErrInvalidConfig)
	}
	if c.Downwind.Uncertainty < 0 || c.Downwind.Uncertainty >= 180 {
		return fmt.Errorf("%w: downwind.uncertainty %v outside [0,180)", ErrInvalidConfig, c.Downwind.Uncertainty)
	}
	if c.Downwind.Radius <= 0 {
		return fmt.Errorf("%w: downwind.radius must be positive", ErrInvalidConfig)
	}
	if c.Downwind.Points < 2 {
		return fmt.Errorf("%w: downwind.points must be at least 2", ErrInvalidConfig)
	}
	if c.Site.Lat < -90 || c.Site.Lat > 90 || c.Site.Lon < -180 || c.Site.Lon > 180 {
		return fmt.Errorf("%w: site %v,%v out of range", ErrInvalidConfig, c.Site.Lat, c.Site.Lon)
	}
	if _, err := wind.DirectionMeanByName(c.Aggregate.DirectionMean); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := wind.ParseCategory(c.UI.Category); err != nil {
		return fmt.Errorf("%w: ui.category: %v", ErrInvalidConfig, err)
	}
	if _, err := report.ParseSeries(c.UI.Series); err != nil {
		return fmt.Errorf("%w: ui.series: %v", ErrInvalidConfig, err)
	}
	return nil
}

// reportOptions converts the config into render options.
func (c *Config) reportOptions() report.Options {
	o := report.DefaultOptions()
	o.Category, _ = wind.ParseCategory(c.UI.Category)
	o.Series, _ = report.ParseSeries(c.UI.Series)
	o.Uncertainty = c.Downwind.Uncertainty
	o.Radius = c.Downwind.Radius
	o.Points = c.Downwind.Points
	o.Site = wind.Site{Lat: c.Site.Lat, Lon: c.Site.Lon}
	o.DirectionMean, _ = wind.DirectionMeanByName(c.Aggregate.DirectionMean)
	return o
}

// defaultConfigDir is where the config file is looked up when --config is
// not given.
func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Clean(home), nil
}
