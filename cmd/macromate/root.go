package main

import (
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/spf13/cobra"
)

var (
	verbose bool

	baseLogger *glog.BaseLogger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "macromate",
	Short: "Nutrition and macro tracking backend",
	Long: `macromate serves the nutrition API, manages its database and runs the
macro calculator from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			baseLogger = glog.NewLogger(
				glog.WithLoggerTypePretty(),
				glog.WithLevel(glog.Trace),
				glog.WithName("macromate"),
				glog.WithAddSource(true),
				glog.WithRichErrorHandler(errors.ToSlogAttributes),
			)
			return nil
		}
		baseLogger = glog.NewLogger(
			glog.WithLoggerTypePretty(),
			glog.WithName("macromate"),
			glog.WithAddSource(false),
			glog.WithRichErrorHandler(errors.ToSlogAttributes),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable trace logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(calcCmd)
}

func getLogger(name string) glog.Logger {
	return baseLogger.GetLogger(name)
}
