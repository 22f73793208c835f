package scheduler

import (
	"time"

	"github.com/me/taskplan/pkg/model"
)

// SplitBlock turns a block of execution of the given length starting at start
// into per-day entries. A block crossing midnight ends at hour 24 on the first
// day and continues at hour 0 on the next, repeated until the block is covered.
func SplitBlock(start time.Time, hours int, name string) []model.ScheduleEntry {
	start = start.UTC()
	end := start.Add(time.Duration(hours) * time.Hour)

	var entries []model.ScheduleEntry
	for cur := start; cur.Before(end); {
		y, m, d := cur.Date()
		nextDay := time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)

		endHour := 24
		if end.Before(nextDay) {
			endHour = end.Hour()
		}

		entries = append(entries, model.ScheduleEntry{
			Task:  name,
			Start: cur.Hour(),
			End:   endHour,
			Date:  cur.Format(model.DateLayout),
		})
		cur = nextDay
	}
	return entries
}

// clock is the simulated current time of one strategy run together with the
// entries emitted so far.
type clock struct {
	now time.Time
	out []model.ScheduleEntry
}

func newClock(start time.Time) *clock {
	return &clock{now: start, out: []model.ScheduleEntry{}}
}

// waitUntil jumps the clock forward to t if t is later.
func (c *clock) waitUntil(t time.Time) {
	if t.After(c.now) {
		c.now = t
	}
}

// run executes name for hours starting at the current clock.
func (c *clock) run(name string, hours int) {
	c.out = append(c.out, SplitBlock(c.now, hours, name)...)
	c.now = c.now.Add(time.Duration(hours) * time.Hour)
}
