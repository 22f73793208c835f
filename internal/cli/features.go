package cli

import (
	"fmt"

	"github.com/me/taskplan/internal/features"
	"github.com/me/taskplan/internal/taskio"
	"github.com/spf13/cobra"
)

func newFeaturesCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print the classifier feature vector of a task file",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := taskio.LoadTasks(file)
			if err != nil {
				return err
			}
			f, err := features.Extract(tasks)
			if err != nil {
				return fmt.Errorf("features: %w", err)
			}
			if asJSON {
				return taskio.WriteJSON(cmd.OutOrStdout(), f)
			}

			w := cmd.OutOrStdout()
			for i, v := range f.Vector() {
				fmt.Fprintf(w, "%-22s %.6g\n", features.Names()[i], v)
			}
			fmt.Fprintf(w, "%-22s %.6g\n", "avg_slack", f.AvgSlack)
			fmt.Fprintf(w, "%-22s %.6g\n", "min_slack", f.MinSlack)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Task file (YAML or JSON)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	cmd.MarkFlagRequired("file")
	return cmd
}
