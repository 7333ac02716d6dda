package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sumwatshade/winddash/cmd/web"
	"github.com/sumwatshade/winddash/cmd/wind"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serves the interactive dashboard page. Every request re-reads the data
file; the time of day and plotted series come from the category and series
query parameters. /healthz and /metrics are served alongside.`,
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

		srv := web.NewServer(cfg.Serve.Addr, wind.NewFileService(cfg.Data.Path), cfg.reportOptions(), web.NewMetrics(), logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !web.IsClosed(err) {
				errc <- err
			}
			close(errc)
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
			return err
		}
		logger.Info("shutdown complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")
	cobra.CheckErr(viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr")))
}
