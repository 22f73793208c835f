package model

// ScheduleEntry is one contiguous block of execution within a single calendar day.
// End is in [1,24]; 24 means the block runs to midnight and continues on the next day.
type ScheduleEntry struct {
	Task  string `json:"task" yaml:"task"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Date  string `json:"date" yaml:"date"`
}

// Hours returns the length of the block.
func (e ScheduleEntry) Hours() int {
	return e.End - e.Start
}

// HoursByTask sums block lengths per task name.
func HoursByTask(entries []ScheduleEntry) map[string]int {
	out := make(map[string]int)
	for _, e := range entries {
		out[e.Task] += e.Hours()
	}
	return out
}
