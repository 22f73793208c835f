// Package scoring rates a produced timetable against the tasks it was built
// from. It is the fitness function used offline to label which strategy (and
// round-robin quantum) suits a task mix best; it is not on the request path.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/me/taskplan/internal/scheduler"
	"github.com/me/taskplan/pkg/model"
)

// Composite weights.
const (
	WeightTurnaround = 0.25
	WeightWaiting    = 0.25
	WeightDeadline   = 0.30
	WeightImportance = 0.20
)

// epsilon guards near-zero denominators.
const epsilon = 1e-5

// TaskMetrics is the per-task breakdown behind a score. Times are absolute
// hours since the Unix epoch.
type TaskMetrics struct {
	ID          int     `json:"id"`
	Name        string  `json:"task"`
	Scheduled   bool    `json:"scheduled"`
	Start       float64 `json:"start,omitempty"`
	End         float64 `json:"end,omitempty"`
	Turnaround  float64 `json:"turnaround"`
	Waiting     float64 `json:"waiting"`
	DeadlineMet bool    `json:"deadline_met"`
}

// Report is the full result of Evaluate.
type Report struct {
	Score          float64       `json:"score"`
	Span           float64       `json:"span"`
	MeanTurnaround float64       `json:"mean_turnaround"` // normalized by Span
	MeanWaiting    float64       `json:"mean_waiting"`    // normalized by Span
	DeadlineRate   float64       `json:"deadline_rate"`
	ImportanceTerm float64       `json:"importance_term"`
	Tasks          []TaskMetrics `json:"tasks"`
}

// Score returns the composite quality of schedule for tasks, in [0,1].
func Score(schedule []model.ScheduleEntry, tasks []model.Task) (float64, error) {
	r, err := Evaluate(schedule, tasks)
	if err != nil {
		return 0, err
	}
	return r.Score, nil
}

// Evaluate computes the score and its components. Entries are attributed to
// tasks by name. A task with no entries is charged twice the schedule span
// for both turnaround and waiting and never counts as meeting its deadline.
func Evaluate(schedule []model.ScheduleEntry, tasks []model.Task) (*Report, error) {
	origin, span, err := extent(schedule)
	if err != nil {
		return nil, err
	}

	byName := make(map[string][]model.ScheduleEntry)
	for _, e := range schedule {
		byName[e.Task] = append(byName[e.Task], e)
	}

	report := &Report{Span: span, Tasks: make([]TaskMetrics, 0, len(tasks))}
	var sumTurnaround, sumWaiting, weighted float64
	met := 0

	for _, task := range tasks {
		arrivalAt, err := scheduler.AbsoluteTime(task.ID, "arrivalTime", task.Arrival)
		if err != nil {
			return nil, err
		}
		deadlineAt, err := scheduler.AbsoluteTime(task.ID, "deadlineTime", task.Deadline)
		if err != nil {
			return nil, err
		}
		arrival, deadline := hoursOf(arrivalAt), hoursOf(deadlineAt)

		m := TaskMetrics{ID: task.ID, Name: task.Name}
		execs := byName[task.Name]
		if len(execs) == 0 {
			m.Turnaround = 2 * span
			m.Waiting = 2 * span
			sumTurnaround += m.Turnaround
			sumWaiting += m.Waiting
			report.Tasks = append(report.Tasks, m)
			continue
		}

		start, end := math.Inf(1), math.Inf(-1)
		for _, e := range execs {
			s, en, err := entryBounds(e)
			if err != nil {
				return nil, err
			}
			start = math.Min(start, s)
			end = math.Max(end, en)
		}

		tat := end - arrival
		m.Scheduled = true
		m.Start, m.End = start, end
		m.Turnaround = math.Max(tat, 0)
		m.Waiting = math.Max(tat-float64(task.Duration), 0)
		m.DeadlineMet = end <= deadline
		if m.DeadlineMet {
			met++
		}
		weighted += float64(task.Importance.Weight()) / (end - origin + epsilon)

		sumTurnaround += m.Turnaround
		sumWaiting += m.Waiting
		report.Tasks = append(report.Tasks, m)
	}

	n := math.Max(float64(len(tasks)), epsilon)
	report.MeanTurnaround = sumTurnaround / n / span
	report.MeanWaiting = sumWaiting / n / span
	report.DeadlineRate = float64(met) / n
	report.ImportanceTerm = weighted / n

	score := WeightTurnaround*(1-report.MeanTurnaround) +
		WeightWaiting*(1-report.MeanWaiting) +
		WeightDeadline*report.DeadlineRate +
		WeightImportance*report.ImportanceTerm
	report.Score = math.Max(0, math.Min(1, score))
	return report, nil
}

// extent returns the earliest entry start and the span to the latest entry
// end, with the span floored at one hour.
func extent(schedule []model.ScheduleEntry) (origin, span float64, err error) {
	if len(schedule) == 0 {
		return 0, 1, nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, e := range schedule {
		s, en, err := entryBounds(e)
		if err != nil {
			return 0, 0, err
		}
		lo = math.Min(lo, math.Min(s, en))
		hi = math.Max(hi, math.Max(s, en))
	}
	span = hi - lo
	if span == 0 {
		span = 1
	}
	return lo, span, nil
}

// entryBounds converts an entry's start and end (end may be 24) to absolute hours.
func entryBounds(e model.ScheduleEntry) (start, end float64, err error) {
	day, err := time.ParseInLocation(model.DateLayout, e.Date, time.UTC)
	if err != nil {
		return 0, 0, &model.ParseError{Field: "entry.date", Value: e.Date, Err: fmt.Errorf("entry %q: %w", e.Task, err)}
	}
	base := hoursOf(day)
	return base + float64(e.Start), base + float64(e.End), nil
}

func hoursOf(t time.Time) float64 {
	return float64(t.Unix()) / 3600
}
