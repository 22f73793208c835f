package scheduler

import "github.com/me/taskplan/pkg/model"

// SJF runs the shortest arrived task to completion, non-preemptively.
type SJF struct{}

func (SJF) Algorithm() model.Algorithm { return model.AlgorithmSJF }

func (SJF) Schedule(tasks []model.Task, _ Options) ([]model.ScheduleEntry, error) {
	return runNonPreemptive(tasks, func(a, b *job) bool {
		if a.task.Duration != b.task.Duration {
			return a.task.Duration < b.task.Duration
		}
		return before(a, b)
	})
}

// runNonPreemptive repeatedly selects the best arrived job under less and runs
// it to completion. When nothing has arrived the clock jumps to the next
// arrival and selection happens on the following pass.
func runNonPreemptive(tasks []model.Task, less func(a, b *job) bool) ([]model.ScheduleEntry, error) {
	remaining, err := prepare(tasks)
	if err != nil {
		return nil, err
	}
	if len(remaining) == 0 {
		return []model.ScheduleEntry{}, nil
	}

	c := newClock(nextArrival(remaining))
	for len(remaining) > 0 {
		available := arrivedBy(remaining, c.now)
		if len(available) == 0 {
			c.waitUntil(nextArrival(remaining))
			continue
		}
		selected := pick(available, less)
		c.run(selected.task.Name, selected.task.Duration)
		remaining = without(remaining, selected)
	}
	return c.out, nil
}
