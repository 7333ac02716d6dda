package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sumwatshade/winddash/cmd/report"
	"github.com/sumwatshade/winddash/cmd/wind"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the dashboard to files",
	Long: `Renders the four dashboard panels once. The echarts backend writes a
single interactive HTML page; the static backend writes PNG charts and a
markdown summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		logger, closeLog, err := newLogger(cfg.Log.Level, cfg.Log.File, os.Stderr)
		if err != nil {
			return err
		}
		defer closeLog()

		return renderDashboard(cfg, logger, cmd.OutOrStdout())
	},
}

// renderDashboard loads the data file and writes every panel with the
// configured backend, printing the paths written to out. Nothing is written
// when the load fails.
func renderDashboard(cfg *Config, logger *slog.Logger, out io.Writer) error {
	ds, err := wind.NewFileService(cfg.Data.Path).Load()
	if err != nil {
		logger.Error("load wind data", "path", cfg.Data.Path, "error", err)
		return loadError{err: err}
	}
	logger.Info("wind data loaded", "path", cfg.Data.Path, "observations", ds.Len())

	m, err := report.Build(ds, cfg.reportOptions())
	if err != nil {
		return err
	}
	b, err := report.New(cfg.Render.Backend, cfg.Render.Out)
	if err != nil {
		return err
	}
	if err := report.Render(b, m); err != nil {
		return err
	}

	if s, ok := b.(*report.Static); ok {
		for _, f := range s.Files() {
			fmt.Fprintln(out, f)
		}
	} else {
		fmt.Fprintln(out, filepath.Join(cfg.Render.Out, report.DashboardFile))
	}
	logger.Info("dashboard rendered", "backend", cfg.Render.Backend, "out", cfg.Render.Out, "category", m.Selected)
	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	flags := renderCmd.Flags()
	flags.String("backend", report.BackendECharts, "render backend (echarts, static)")
	flags.String("out", ".", "output directory")
	cobra.CheckErr(viper.BindPFlag("render.backend", flags.Lookup("backend")))
	cobra.CheckErr(viper.BindPFlag("render.out", flags.Lookup("out")))
}
