package scheduler

import "github.com/me/taskplan/pkg/model"

// Priority runs the arrived task with the best importance rank to completion.
type Priority struct{}

func (Priority) Algorithm() model.Algorithm { return model.AlgorithmPriority }

func (Priority) Schedule(tasks []model.Task, _ Options) ([]model.ScheduleEntry, error) {
	return runNonPreemptive(tasks, func(a, b *job) bool {
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		return before(a, b)
	})
}
