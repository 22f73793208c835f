package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"

	"github.com/me/taskplan/internal/features"
	"github.com/me/taskplan/internal/logging"
	"github.com/me/taskplan/pkg/model"
	"golang.org/x/sync/errgroup"
)

// Config describes one dataset build.
type Config struct {
	Kind      model.DatasetKind
	Batches   int
	Seed      uint64
	Workers   int // <= 0 means GOMAXPROCS
	Generator GeneratorConfig
	Quanta    []int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Kind:      model.DatasetAlgorithm,
		Batches:   1000,
		Seed:      1,
		Generator: DefaultGeneratorConfig(),
		Quanta:    DefaultQuanta(),
	}
}

// Builder generates labeled samples in parallel.
type Builder struct {
	config Config
	logger *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(cfg Config, logger *slog.Logger) *Builder {
	return &Builder{config: cfg, logger: logging.Component(logger, "dataset")}
}

// Build produces one sample per batch. Batch i draws from its own source
// seeded by (Seed, i), so output does not depend on the number of workers.
func (b *Builder) Build(ctx context.Context) ([]model.Sample, error) {
	cfg := b.config
	if !cfg.Kind.Valid() {
		return nil, model.NewInvalidArgumentError("unknown dataset kind %q", cfg.Kind)
	}
	if cfg.Batches <= 0 {
		return nil, model.NewInvalidArgumentError("batches must be positive, got %d", cfg.Batches)
	}
	if len(cfg.Quanta) == 0 {
		cfg.Quanta = DefaultQuanta()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	// Fail on a bad generator config before spawning anything.
	if _, err := NewGenerator(cfg.Generator, rand.New(rand.NewPCG(cfg.Seed, 0))); err != nil {
		return nil, err
	}

	b.logger.Info("building dataset", "kind", cfg.Kind, "batches", cfg.Batches, "workers", workers, "seed", cfg.Seed)

	samples := make([]model.Sample, cfg.Batches)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.Batches; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := b.sample(cfg, i)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			samples[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.logger.Info("dataset built", "samples", len(samples))
	return samples, nil
}

func (b *Builder) sample(cfg Config, batch int) (model.Sample, error) {
	gen, err := NewGenerator(cfg.Generator, rand.New(rand.NewPCG(cfg.Seed, uint64(batch)+1)))
	if err != nil {
		return model.Sample{}, err
	}
	tasks := gen.Tasks()

	feats, err := features.Extract(tasks)
	if err != nil {
		return model.Sample{}, err
	}

	s := model.Sample{Batch: batch, Features: feats.Map()}
	switch cfg.Kind {
	case model.DatasetQuantum:
		idx, sc, err := BestQuantum(tasks, cfg.Quanta)
		if err != nil {
			return model.Sample{}, err
		}
		s.Label, s.Score = idx, sc
	default:
		best, err := Best(tasks, cfg.Quanta)
		if err != nil {
			return model.Sample{}, err
		}
		s.Label, s.Score = best.Algorithm.Index(), best.Score
	}
	b.logger.Debug("sample", "batch", batch, "tasks", len(tasks), "label", s.Label, "score", s.Score)
	return s, nil
}
