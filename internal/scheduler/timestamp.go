package scheduler

import (
	"strconv"
	"time"

	"github.com/me/taskplan/pkg/model"
)

// AbsoluteTime converts a date+hour pair to a UTC instant, precise to the hour.
// All strategies and the scorer share this conversion so orderings agree everywhere.
func AbsoluteTime(taskID int, field string, tp model.TimePoint) (time.Time, error) {
	if tp.Hour < 0 || tp.Hour > 23 {
		return time.Time{}, &model.ParseError{TaskID: taskID, Field: field + ".hrs", Value: strconv.Itoa(tp.Hour)}
	}
	day, err := time.ParseInLocation(model.DateLayout, tp.Date, time.UTC)
	if err != nil {
		return time.Time{}, &model.ParseError{TaskID: taskID, Field: field + ".date", Value: tp.Date, Err: err}
	}
	return day.Add(time.Duration(tp.Hour) * time.Hour), nil
}

// job is the scheduler's working view of a task: parsed timestamps, rank and
// remaining hours. pos is the task's input position, the last tie-break.
type job struct {
	task      model.Task
	pos       int
	arrival   time.Time
	deadline  time.Time
	rank      int
	remaining int
}

// MaxDurationHours is the longest task duration accepted: a leap year of hours.
const MaxDurationHours = 24 * 366

// prepare parses every task up front so no strategy can fail halfway through.
func prepare(tasks []model.Task) ([]*job, error) {
	jobs := make([]*job, 0, len(tasks))
	for i, t := range tasks {
		if t.Duration <= 0 {
			return nil, model.NewInvalidArgumentError("task %d: duration must be positive, got %d", t.ID, t.Duration)
		}
		if t.Duration > MaxDurationHours {
			return nil, model.NewInvalidArgumentError("task %d: duration %d exceeds limit of %d hours", t.ID, t.Duration, MaxDurationHours)
		}
		arrival, err := AbsoluteTime(t.ID, "arrivalTime", t.Arrival)
		if err != nil {
			return nil, err
		}
		deadline, err := AbsoluteTime(t.ID, "deadlineTime", t.Deadline)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, &job{
			task:      t,
			pos:       i,
			arrival:   arrival,
			deadline:  deadline,
			rank:      t.Importance.Rank(),
			remaining: t.Duration,
		})
	}
	return jobs, nil
}

// before is the canonical tie-break applied after a strategy's primary key:
// ascending task id, then input position.
func before(a, b *job) bool {
	if a.task.ID != b.task.ID {
		return a.task.ID < b.task.ID
	}
	return a.pos < b.pos
}

// byArrival orders jobs by arrival, then the canonical tie-break.
func byArrival(a, b *job) bool {
	if !a.arrival.Equal(b.arrival) {
		return a.arrival.Before(b.arrival)
	}
	return before(a, b)
}

// pick returns the job that orders first under less, or nil for an empty set.
func pick(jobs []*job, less func(a, b *job) bool) *job {
	var best *job
	for _, j := range jobs {
		if best == nil || less(j, best) {
			best = j
		}
	}
	return best
}

// arrivedBy returns the jobs whose arrival is at or before now, in input order.
func arrivedBy(jobs []*job, now time.Time) []*job {
	var out []*job
	for _, j := range jobs {
		if !j.arrival.After(now) {
			out = append(out, j)
		}
	}
	return out
}

// nextArrival returns the clock value after the idle-jump rule: the earliest
// arrival among jobs. jobs must be non-empty.
func nextArrival(jobs []*job) time.Time {
	return pick(jobs, byArrival).arrival
}

// without returns jobs minus target, preserving order.
func without(jobs []*job, target *job) []*job {
	out := make([]*job, 0, len(jobs)-1)
	for _, j := range jobs {
		if j != target {
			out = append(out, j)
		}
	}
	return out
}
