package scheduler

import (
	"sort"

	"github.com/me/taskplan/pkg/model"
)

// RoundRobin rotates a FIFO ready queue, running each head for at most
// TimeQuantum hours.
type RoundRobin struct{}

func (RoundRobin) Algorithm() model.Algorithm { return model.AlgorithmRR }

func (RoundRobin) Schedule(tasks []model.Task, opts Options) ([]model.ScheduleEntry, error) {
	if opts.TimeQuantum <= 0 {
		return nil, model.NewInvalidArgumentError("round-robin time quantum must be positive, got %d", opts.TimeQuantum)
	}
	arrivals, err := prepare(tasks)
	if err != nil {
		return nil, err
	}
	if len(arrivals) == 0 {
		return []model.ScheduleEntry{}, nil
	}
	sort.SliceStable(arrivals, func(i, k int) bool { return byArrival(arrivals[i], arrivals[k]) })

	c := newClock(arrivals[0].arrival)
	var queue []*job
	next := 0
	admit := func() {
		for next < len(arrivals) && !arrivals[next].arrival.After(c.now) {
			queue = append(queue, arrivals[next])
			next++
		}
	}

	admit()
	for len(queue) > 0 || next < len(arrivals) {
		if len(queue) == 0 {
			c.waitUntil(arrivals[next].arrival)
			admit()
			continue
		}

		current := queue[0]
		queue = queue[1:]

		slice := min(opts.TimeQuantum, current.remaining)
		c.run(current.task.Name, slice)
		current.remaining -= slice

		// Arrivals during the slice queue ahead of the preempted task.
		admit()
		if current.remaining > 0 {
			queue = append(queue, current)
		}
	}
	return c.out, nil
}
