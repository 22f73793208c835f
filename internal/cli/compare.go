package cli

import (
	"fmt"

	"github.com/me/taskplan/internal/dataset"
	"github.com/me/taskplan/internal/taskio"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	var (
		file   string
		quanta []int
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank every algorithm by score on a task file",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := taskio.LoadTasks(file)
			if err != nil {
				return err
			}
			results, err := dataset.Rank(tasks, quanta)
			if err != nil {
				return fmt.Errorf("compare: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-4s  %-6s  %s\n", "RANK", "ALGO", "SCORE")
			for i, r := range results {
				name := string(r.Algorithm)
				if r.Algorithm.NeedsQuantum() {
					name = fmt.Sprintf("%s/%d", r.Algorithm, r.Quantum)
				}
				fmt.Fprintf(w, "%-4d  %-6s  %.4f\n", i+1, name, r.Score)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Task file (YAML or JSON)")
	cmd.Flags().IntSliceVar(&quanta, "quanta", dataset.DefaultQuanta(), "Round-robin quanta to try")
	cmd.MarkFlagRequired("file")
	return cmd
}
