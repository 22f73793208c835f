package scheduler

import (
	"fmt"

	"github.com/me/taskplan/pkg/model"
)

// Options carries strategy parameters.
type Options struct {
	// TimeQuantum is the maximum slice length for round-robin. Ignored by
	// every other strategy.
	TimeQuantum int
}

// Strategy maps a task collection to an ordered sequence of calendar blocks.
// Implementations are pure: no shared state, no I/O, identical input gives
// identical output.
type Strategy interface {
	// Algorithm returns the token this strategy implements.
	Algorithm() model.Algorithm

	// Schedule computes the timetable. tasks is never modified.
	Schedule(tasks []model.Task, opts Options) ([]model.ScheduleEntry, error)
}

// StrategyFor returns the strategy implementing alg.
func StrategyFor(alg model.Algorithm) (Strategy, error) {
	switch alg {
	case model.AlgorithmFCFS:
		return FCFS{}, nil
	case model.AlgorithmSJF:
		return SJF{}, nil
	case model.AlgorithmSRTF:
		return SRTF{}, nil
	case model.AlgorithmRR:
		return RoundRobin{}, nil
	case model.AlgorithmPriority:
		return Priority{}, nil
	case model.AlgorithmEDF:
		return EDF{}, nil
	}
	return nil, model.NewInvalidArgumentError("unknown algorithm %q", string(alg))
}

// Schedule is the single dispatch entry point: it resolves token
// (case-insensitive, trimmed) and runs the matching strategy. quantum is only
// consulted for round-robin, where it must be positive.
func Schedule(tasks []model.Task, token string, quantum int) ([]model.ScheduleEntry, error) {
	alg, err := model.ParseAlgorithm(token)
	if err != nil {
		return nil, err
	}
	s, err := StrategyFor(alg)
	if err != nil {
		return nil, err
	}
	entries, err := s.Schedule(tasks, Options{TimeQuantum: quantum})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", alg, err)
	}
	return entries, nil
}
