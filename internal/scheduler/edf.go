package scheduler

import "github.com/me/taskplan/pkg/model"

// EDF runs the arrived task with the earliest absolute deadline to completion.
//
// Unlike SJF and Priority, after an idle jump EDF recomputes availability
// within the same decision step instead of deferring to the next pass. The
// resulting timetable is the same; the asymmetry is kept as observed.
type EDF struct{}

func (EDF) Algorithm() model.Algorithm { return model.AlgorithmEDF }

func (EDF) Schedule(tasks []model.Task, _ Options) ([]model.ScheduleEntry, error) {
	remaining, err := prepare(tasks)
	if err != nil {
		return nil, err
	}
	if len(remaining) == 0 {
		return []model.ScheduleEntry{}, nil
	}

	earliestDeadline := func(a, b *job) bool {
		if !a.deadline.Equal(b.deadline) {
			return a.deadline.Before(b.deadline)
		}
		return before(a, b)
	}

	c := newClock(nextArrival(remaining))
	for len(remaining) > 0 {
		available := arrivedBy(remaining, c.now)
		if len(available) == 0 {
			c.waitUntil(nextArrival(remaining))
			available = arrivedBy(remaining, c.now)
		}
		selected := pick(available, earliestDeadline)
		c.run(selected.task.Name, selected.task.Duration)
		remaining = without(remaining, selected)
	}
	return c.out, nil
}
