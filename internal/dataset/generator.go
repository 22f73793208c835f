// Package dataset builds labeled training data for the strategy classifier:
// random task mixes, their features, and the strategy (or round-robin quantum)
// that scores best on them.
package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/me/taskplan/pkg/model"
)

// GeneratorConfig bounds the random task mixes.
type GeneratorConfig struct {
	MinTasks  int
	MaxTasks  int
	StartDate string // YYYY-MM-DD; arrivals fall within three days of it
}

// DefaultGeneratorConfig returns the mix shape used to train the shipped classifier.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{MinTasks: 4, MaxTasks: 10, StartDate: "2025-09-27"}
}

var importances = []model.Importance{model.ImportanceLow, model.ImportanceMedium, model.ImportanceHigh}

// Generator produces random task collections from a seeded source.
// A Generator is not safe for concurrent use.
type Generator struct {
	cfg   GeneratorConfig
	start time.Time
	rng   *rand.Rand
}

// NewGenerator validates cfg and returns a generator driven by rng.
func NewGenerator(cfg GeneratorConfig, rng *rand.Rand) (*Generator, error) {
	if cfg.MinTasks <= 0 || cfg.MaxTasks < cfg.MinTasks {
		return nil, model.NewInvalidArgumentError("task count range [%d,%d] is invalid", cfg.MinTasks, cfg.MaxTasks)
	}
	start, err := time.ParseInLocation(model.DateLayout, cfg.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", &model.ParseError{Field: "start_date", Value: cfg.StartDate, Err: err})
	}
	return &Generator{cfg: cfg, start: start, rng: rng}, nil
}

// Tasks returns a new random task list. Ids start at 1 and names are
// "Task 0".."Task n-1".
func (g *Generator) Tasks() []model.Task {
	n := g.intBetween(g.cfg.MinTasks, g.cfg.MaxTasks)
	tasks := make([]model.Task, n)
	for i := range tasks {
		duration := int(math.RoundToEven(1 + 9*g.rng.Float64()))

		arrivalDay := g.start.AddDate(0, 0, g.intBetween(0, 2))
		arrivalHour := g.intBetween(0, 23)

		extraHours := g.intBetween(int(float64(duration)*1.2), duration*3)
		extraDays := g.intBetween(0, 2)
		total := arrivalHour + extraHours
		deadlineDay := arrivalDay.AddDate(0, 0, extraDays+total/24)

		tasks[i] = model.Task{
			ID:         i + 1,
			Name:       fmt.Sprintf("Task %d", i),
			Duration:   duration,
			Arrival:    model.TimePoint{Hour: arrivalHour, Date: arrivalDay.Format(model.DateLayout)},
			Deadline:   model.TimePoint{Hour: total % 24, Date: deadlineDay.Format(model.DateLayout)},
			Importance: importances[g.rng.IntN(len(importances))],
		}
	}
	return tasks
}

// intBetween returns a uniform integer in [lo, hi].
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}
