package store

import (
	"context"

	"github.com/me/taskplan/pkg/model"
)

// Store defines the persistence layer for generated datasets.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, run *model.DatasetRun) error
	GetRun(ctx context.Context, id string) (*model.DatasetRun, error)
	ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.DatasetRun, int, error)

	// Samples
	InsertSamples(ctx context.Context, runID string, samples []model.Sample) error
	ListSamples(ctx context.Context, runID string, opts model.ListOptions) ([]model.Sample, int, error)
	LabelCounts(ctx context.Context, runID string) (map[int]int, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
