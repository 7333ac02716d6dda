/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sumwatshade/winddash/cmd/wind"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "winddash",
	Short: "Explore wind observations for a single site by time of day",
	Long: `Loads hourly wind speed and direction observations from a CSV file,
groups them into Early Morning, Morning, Afternoon and Evening, and shows
time series, a direction rose, the downwind sector on a map and a summary table.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		// The alt screen owns stderr, so the dashboard only logs to a file.
		logger, closeLog, err := newLogger(cfg.Log.Level, cfg.Log.File, io.Discard)
		if err != nil {
			return err
		}
		defer closeLog()

		svc := wind.NewFileService(cfg.Data.Path)
		logger.Info("dashboard starting", "data", cfg.Data.Path)
		p := tea.NewProgram(initialModel(cfg, svc, logger), tea.WithAltScreen())

		_, err = p.Run()

		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.winddash.yaml)")
	flags.String("data", wind.DefaultDataPath, "wind observations CSV (time, wind_speed, wind_direction)")
	flags.Float64("uncertainty", 15, "half-width of the downwind sector in degrees")
	flags.String("category", string(wind.EarlyMorning), "initial time-of-day category")
	flags.StringSlice("series", wind.SeriesNames, "time series to plot (speed, direction)")
	flags.String("direction-mean", "arithmetic", "direction averaging: arithmetic or circular")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "write logs to this file")

	bind := map[string]string{
		"data.path":                "data",
		"downwind.uncertainty":     "uncertainty",
		"ui.category":              "category",
		"ui.series":                "series",
		"aggregate.direction_mean": "direction-mean",
		"log.level":                "log-level",
		"log.file":                 "log-file",
	}
	for key, flag := range bind {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := defaultConfigDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".winddash" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".winddash")
	}

	viper.SetEnvPrefix("WINDDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
