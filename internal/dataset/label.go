package dataset

import (
	"fmt"
	"sort"

	"github.com/me/taskplan/internal/scheduler"
	"github.com/me/taskplan/internal/scoring"
	"github.com/me/taskplan/pkg/model"
)

// DefaultQuanta are the round-robin quanta tried during labeling. A quantum's
// position is its class index in quantum datasets.
func DefaultQuanta() []int {
	return []int{1, 2, 4, 6}
}

// Result is the best strategy found for one task mix.
type Result struct {
	Algorithm model.Algorithm
	Quantum   int // zero unless Algorithm is rr
	Score     float64
}

// Rank runs every algorithm (round-robin once per quantum) and returns the
// scored results ordered best first. Equal scores keep label order.
func Rank(tasks []model.Task, quanta []int) ([]Result, error) {
	var results []Result
	for _, alg := range model.Algorithms() {
		qs := []int{0}
		if alg.NeedsQuantum() {
			qs = quanta
		}
		for _, q := range qs {
			sc, err := evaluate(tasks, alg, q)
			if err != nil {
				return nil, err
			}
			results = append(results, Result{Algorithm: alg, Quantum: q, Score: sc})
		}
	}
	sort.SliceStable(results, func(i, k int) bool { return results[i].Score > results[k].Score })
	return results, nil
}

// Best returns the first strictly best result of Rank.
func Best(tasks []model.Task, quanta []int) (Result, error) {
	results, err := Rank(tasks, quanta)
	if err != nil {
		return Result{}, err
	}
	if len(results) == 0 {
		return Result{}, model.NewInvalidArgumentError("no strategy could be evaluated")
	}
	return results[0], nil
}

// BestQuantum returns the index into quanta of the best-scoring round-robin
// quantum, and its score.
func BestQuantum(tasks []model.Task, quanta []int) (int, float64, error) {
	if len(quanta) == 0 {
		return 0, 0, model.NewInvalidArgumentError("no quanta to evaluate")
	}
	bestIdx, bestScore := -1, -1.0
	for i, q := range quanta {
		sc, err := evaluate(tasks, model.AlgorithmRR, q)
		if err != nil {
			return 0, 0, err
		}
		if sc > bestScore {
			bestIdx, bestScore = i, sc
		}
	}
	return bestIdx, bestScore, nil
}

func evaluate(tasks []model.Task, alg model.Algorithm, quantum int) (float64, error) {
	s, err := scheduler.StrategyFor(alg)
	if err != nil {
		return 0, err
	}
	entries, err := s.Schedule(tasks, scheduler.Options{TimeQuantum: quantum})
	if err != nil {
		return 0, fmt.Errorf("%s (tq=%d): %w", alg, quantum, err)
	}
	return scoring.Score(entries, tasks)
}
