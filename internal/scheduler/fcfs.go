package scheduler

import (
	"sort"

	"github.com/me/taskplan/pkg/model"
)

// FCFS dispatches tasks in arrival order, each to completion.
type FCFS struct{}

func (FCFS) Algorithm() model.Algorithm { return model.AlgorithmFCFS }

func (FCFS) Schedule(tasks []model.Task, _ Options) ([]model.ScheduleEntry, error) {
	jobs, err := prepare(tasks)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return []model.ScheduleEntry{}, nil
	}

	sort.SliceStable(jobs, func(i, k int) bool { return byArrival(jobs[i], jobs[k]) })

	c := newClock(jobs[0].arrival)
	for _, j := range jobs {
		c.waitUntil(j.arrival)
		c.run(j.task.Name, j.task.Duration)
	}
	return c.out, nil
}
