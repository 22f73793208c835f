package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/me/taskplan/internal/config"
	"github.com/me/taskplan/internal/dataset"
	"github.com/me/taskplan/internal/store"
	"github.com/me/taskplan/pkg/model"
	"github.com/spf13/cobra"
)

func newDatasetCmd() *cobra.Command {
	var (
		configFile string
		kind       string
		cfg        = config.DefaultDatasetConfig()
	)
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Generate labeled training data for the strategy classifier",
		Long: "dataset generates random task mixes, scores every algorithm on each and\n" +
			"writes one CSV row per mix: its features and the best algorithm (--kind algo)\n" +
			"or the best round-robin quantum (--kind tq).",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				_, fileCfg, err := config.Load(configFile)
				if err != nil {
					return err
				}
				cfg = mergeFlags(cmd, fileCfg, cfg)
			}
			if cmd.Flags().Changed("kind") || configFile == "" {
				cfg.Kind = model.DatasetKind(kind)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runDataset(cmd.Context(), cmd, cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "YAML config file (dataset section); flags override it")
	f.StringVar(&kind, "kind", string(cfg.Kind), "Label kind: algo or tq")
	f.IntVar(&cfg.Batches, "batches", cfg.Batches, "Number of task mixes")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel workers (0 = GOMAXPROCS)")
	f.IntVar(&cfg.MinTasks, "min-tasks", cfg.MinTasks, "Minimum tasks per mix")
	f.IntVar(&cfg.MaxTasks, "max-tasks", cfg.MaxTasks, "Maximum tasks per mix")
	f.StringVar(&cfg.StartDate, "start-date", cfg.StartDate, "First arrival date (YYYY-MM-DD)")
	f.IntSliceVar(&cfg.Quanta, "quanta", cfg.Quanta, "Round-robin quanta to try")
	f.StringVarP(&cfg.OutPath, "out", "o", cfg.OutPath, "CSV output file (default stdout)")
	f.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite file to record the run in")
	return cmd
}

// mergeFlags starts from the file config and reapplies every flag the user
// set explicitly.
func mergeFlags(cmd *cobra.Command, file, flags config.DatasetConfig) config.DatasetConfig {
	out := file
	set := cmd.Flags().Changed
	if set("batches") {
		out.Batches = flags.Batches
	}
	if set("seed") {
		out.Seed = flags.Seed
	}
	if set("workers") {
		out.Workers = flags.Workers
	}
	if set("min-tasks") {
		out.MinTasks = flags.MinTasks
	}
	if set("max-tasks") {
		out.MaxTasks = flags.MaxTasks
	}
	if set("start-date") {
		out.StartDate = flags.StartDate
	}
	if set("quanta") {
		out.Quanta = flags.Quanta
	}
	if set("out") {
		out.OutPath = flags.OutPath
	}
	if set("db") {
		out.DBPath = flags.DBPath
	}
	return out
}

func runDataset(ctx context.Context, cmd *cobra.Command, cfg config.DatasetConfig) error {
	b := dataset.NewBuilder(dataset.Config{
		Kind:    cfg.Kind,
		Batches: cfg.Batches,
		Seed:    cfg.Seed,
		Workers: cfg.Workers,
		Generator: dataset.GeneratorConfig{
			MinTasks:  cfg.MinTasks,
			MaxTasks:  cfg.MaxTasks,
			StartDate: cfg.StartDate,
		},
		Quanta: cfg.Quanta,
	}, logger)

	samples, err := b.Build(ctx)
	if err != nil {
		return fmt.Errorf("build dataset: %w", err)
	}

	if cfg.OutPath != "" {
		if err := writeCSVFile(cfg.OutPath, cfg.Kind, samples); err != nil {
			return err
		}
	} else if err := dataset.WriteCSV(cmd.OutOrStdout(), cfg.Kind, samples); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	if cfg.DBPath == "" {
		return nil
	}
	runID, err := recordRun(ctx, cfg, samples)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Recorded run %s (%d samples) in %s\n", runID, len(samples), cfg.DBPath)
	return nil
}

// writeCSVFile writes samples to path. A failed close is reported, since the
// tail of the file may not have reached disk.
func writeCSVFile(path string, kind model.DatasetKind, samples []model.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := dataset.WriteCSV(f, kind, samples); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func recordRun(ctx context.Context, cfg config.DatasetConfig, samples []model.Sample) (string, error) {
	st, err := store.NewSQLiteStore(cfg.DBPath, logger)
	if err != nil {
		return "", err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return "", fmt.Errorf("migrate: %w", err)
	}

	run := &model.DatasetRun{Kind: cfg.Kind, Seed: cfg.Seed, Batches: cfg.Batches, Quanta: cfg.Quanta}
	if err := st.CreateRun(ctx, run); err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	if err := st.InsertSamples(ctx, run.ID, samples); err != nil {
		return "", fmt.Errorf("insert samples: %w", err)
	}
	return run.ID, nil
}
