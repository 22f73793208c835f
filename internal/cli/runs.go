package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/me/taskplan/internal/store"
	"github.com/me/taskplan/pkg/model"
	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "runs [run_id]",
		Short: "List recorded dataset runs, or show one run's label distribution",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewSQLiteStore(dbPath, logger)
			if err != nil {
				return err
			}
			defer st.Close()
			ctx := cmd.Context()
			if err := st.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				runs, total, err := st.ListRuns(ctx, model.ListOptions{Limit: limit})
				if err != nil {
					return fmt.Errorf("list runs: %w", err)
				}
				if len(runs) == 0 {
					fmt.Fprintln(w, "No dataset runs found.")
					return nil
				}
				fmt.Fprintf(w, "%-40s  %-4s  %8s  %20s  %s\n", "ID", "KIND", "BATCHES", "SEED", "CREATED")
				for _, r := range runs {
					fmt.Fprintf(w, "%-40s  %-4s  %8d  %20d  %s\n", r.ID, r.Kind, r.Batches, r.Seed, r.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				if total > len(runs) {
					fmt.Fprintf(w, "\n(%d of %d shown)\n", len(runs), total)
				}
				return nil
			}

			id := args[0]
			run, err := st.GetRun(ctx, id)
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			if run == nil {
				return model.NewNotFoundError("dataset run", id)
			}
			counts, err := st.LabelCounts(ctx, id)
			if err != nil {
				return fmt.Errorf("label counts: %w", err)
			}

			fmt.Fprintf(w, "Run:     %s\n", run.ID)
			fmt.Fprintf(w, "  Kind:    %s\n", run.Kind)
			fmt.Fprintf(w, "  Seed:    %d\n", run.Seed)
			fmt.Fprintf(w, "  Batches: %d\n", run.Batches)
			fmt.Fprintln(w, "  Labels:")
			labels := make([]int, 0, len(counts))
			for l := range counts {
				labels = append(labels, l)
			}
			sort.Ints(labels)
			for _, l := range labels {
				fmt.Fprintf(w, "    %-8s %d\n", labelName(run, l), counts[l])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file holding recorded runs")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")
	cmd.MarkFlagRequired("db")
	return cmd
}

// labelName renders a class index the way the run's kind defines it.
func labelName(run *model.DatasetRun, label int) string {
	if run.Kind == model.DatasetQuantum {
		if label >= 0 && label < len(run.Quanta) {
			return fmt.Sprintf("tq=%d", run.Quanta[label])
		}
		return fmt.Sprintf("tq#%d", label)
	}
	algs := model.Algorithms()
	if label >= 0 && label < len(algs) {
		return strings.ToUpper(string(algs[label]))
	}
	return fmt.Sprintf("#%d", label)
}
