package scheduler

import "github.com/me/taskplan/pkg/model"

// Merge collapses adjacent entries of the same task on the same date where the
// second starts exactly at the first's end. Order is preserved and entries are
// never merged across dates, so 24 on day D and 0 on day D+1 stay separate.
// Merge is idempotent.
func Merge(entries []model.ScheduleEntry) []model.ScheduleEntry {
	if len(entries) == 0 {
		return []model.ScheduleEntry{}
	}

	merged := make([]model.ScheduleEntry, 0, len(entries))
	cur := entries[0]
	for _, e := range entries[1:] {
		if e.Task == cur.Task && e.Date == cur.Date && e.Start == cur.End {
			cur.End = e.End
			continue
		}
		merged = append(merged, cur)
		cur = e
	}
	return append(merged, cur)
}
