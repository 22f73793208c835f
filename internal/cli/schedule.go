package cli

import (
	"fmt"
	"io"

	"github.com/me/taskplan/internal/scheduler"
	"github.com/me/taskplan/internal/taskio"
	"github.com/me/taskplan/pkg/model"
	"github.com/spf13/cobra"
)

func newScheduleCmd() *cobra.Command {
	var (
		file    string
		algo    string
		quantum int
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Build a timetable for a task file",
		Example: "  taskplan schedule -f tasks.yaml -a srtf\n" +
			"  taskplan schedule -f tasks.json -a rr -q 2 --json",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := taskio.LoadTasks(file)
			if err != nil {
				return err
			}

			var entries []model.ScheduleEntry
			if client != nil {
				entries, err = client.Schedule(cmd.Context(), tasks, algo, quantum)
			} else {
				entries, err = scheduler.Schedule(tasks, algo, quantum)
			}
			if err != nil {
				return fmt.Errorf("schedule: %w", err)
			}
			logger.Debug("schedule built", "algo", algo, "tasks", len(tasks), "entries", len(entries))

			if asJSON {
				return taskio.WriteJSON(cmd.OutOrStdout(), entries)
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Task file (YAML or JSON)")
	cmd.Flags().StringVarP(&algo, "algo", "a", "fcfs", "Algorithm: fcfs, sjf, srtf, rr, ps, edf")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 0, "Time quantum in hours (rr only)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the timetable as JSON")
	cmd.MarkFlagRequired("file")
	return cmd
}

func printEntries(w io.Writer, entries []model.ScheduleEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No tasks to schedule.")
		return
	}
	fmt.Fprintf(w, "%-10s  %5s  %5s  %s\n", "DATE", "START", "END", "TASK")
	fmt.Fprintf(w, "%-10s  %5s  %5s  %s\n", "----", "-----", "---", "----")
	for _, e := range entries {
		fmt.Fprintf(w, "%-10s  %02d:00  %02d:00  %s\n", e.Date, e.Start, e.End, e.Task)
	}
}
