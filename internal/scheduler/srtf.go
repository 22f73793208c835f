package scheduler

import "github.com/me/taskplan/pkg/model"

// SRTF is preemptive shortest-job-first at one-hour granularity. The hourly
// trace is collapsed with Merge before it is returned.
type SRTF struct{}

func (SRTF) Algorithm() model.Algorithm { return model.AlgorithmSRTF }

func (SRTF) Schedule(tasks []model.Task, _ Options) ([]model.ScheduleEntry, error) {
	pending, err := prepare(tasks)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return []model.ScheduleEntry{}, nil
	}

	shortestRemaining := func(a, b *job) bool {
		if a.remaining != b.remaining {
			return a.remaining < b.remaining
		}
		return before(a, b)
	}

	c := newClock(nextArrival(pending))
	for len(pending) > 0 {
		available := arrivedBy(pending, c.now)
		if len(available) == 0 {
			c.waitUntil(nextArrival(pending))
			continue
		}
		selected := pick(available, shortestRemaining)
		c.run(selected.task.Name, 1)
		selected.remaining--
		if selected.remaining == 0 {
			pending = without(pending, selected)
		}
	}
	return Merge(c.out), nil
}
