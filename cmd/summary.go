package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sumwatshade/winddash/cmd/summary"
	"github.com/sumwatshade/winddash/cmd/wind"
)

var computed bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the summary table of average wind direction and speed",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Summary Table of Average Wind Direction and Speed")
		fmt.Fprintln(out, summary.Table(summary.Reference, ""))

		if computed {
			cfg, err := loadConfig(viper.GetViper())
			if err != nil {
				return err
			}
			ds, err := wind.NewFileService(cfg.Data.Path).Load()
			if err != nil {
				return loadError{err: err}
			}
			dirMean, _ := wind.DirectionMeanByName(cfg.Aggregate.DirectionMean)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Computed from %s (%d observations)\n", ds.Source, ds.Len())
			fmt.Fprintln(out, summary.Table(summary.FromAggregates(wind.AggregateWith(ds.Observations, dirMean)), ""))
		}

		fmt.Fprintln(out)
		fmt.Fprint(out, summary.Interpretation)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVar(&computed, "computed", false, "also print averages computed from the data file")
}
