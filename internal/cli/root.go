// Package cli implements the taskplan command line.
package cli

import (
	"log/slog"
	"os"

	"github.com/me/taskplan/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns TASKPLAN_SERVER, or "" to compute locally.
func defaultServer() string {
	return os.Getenv("TASKPLAN_SERVER")
}

// NewRootCmd creates the root cobra command for the taskplan CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taskplan",
		Short: "taskplan: personal task scheduling with classic CPU scheduling algorithms",
		Long: "taskplan turns a list of tasks (duration, arrival, deadline, importance) into a\n" +
			"day-by-day timetable using FCFS, SJF, SRTF, round-robin, priority or EDF,\n" +
			"scores timetables and generates training data for the strategy classifier.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(flagLogLevel), flagLogFormat, cmd.ErrOrStderr())
			client = nil
			if flagServer != "" {
				client = NewClient(flagServer, logger)
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "taskplan server URL for remote scheduling (or TASKPLAN_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newScheduleCmd(),
		newScoreCmd(),
		newCompareCmd(),
		newFeaturesCmd(),
		newDatasetCmd(),
		newRunsCmd(),
	)

	return root
}
