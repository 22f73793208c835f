package cli

import (
	"fmt"

	"github.com/me/taskplan/internal/scoring"
	"github.com/me/taskplan/internal/taskio"
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var (
		file     string
		schedule string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a timetable against its task file",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := taskio.LoadTasks(file)
			if err != nil {
				return err
			}
			entries, err := taskio.LoadSchedule(schedule)
			if err != nil {
				return err
			}
			report, err := scoring.Evaluate(entries, tasks)
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}
			if asJSON {
				return taskio.WriteJSON(cmd.OutOrStdout(), report)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Score: %.4f\n", report.Score)
			fmt.Fprintf(w, "  Span:            %.0fh\n", report.Span)
			fmt.Fprintf(w, "  Turnaround:      %.4f\n", report.MeanTurnaround)
			fmt.Fprintf(w, "  Waiting:         %.4f\n", report.MeanWaiting)
			fmt.Fprintf(w, "  Deadlines met:   %.0f%%\n", report.DeadlineRate*100)
			fmt.Fprintf(w, "  Importance term: %.4f\n", report.ImportanceTerm)
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%-4s  %-24s  %10s  %8s  %s\n", "ID", "TASK", "TURNAROUND", "WAITING", "DEADLINE")
			for _, m := range report.Tasks {
				status := "met"
				switch {
				case !m.Scheduled:
					status = "unscheduled"
				case !m.DeadlineMet:
					status = "missed"
				}
				fmt.Fprintf(w, "%-4d  %-24s  %10.0f  %8.0f  %s\n", m.ID, m.Name, m.Turnaround, m.Waiting, status)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Task file (YAML or JSON)")
	cmd.Flags().StringVarP(&schedule, "schedule", "s", "", "Timetable file (JSON list of entries)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("schedule")
	return cmd
}
