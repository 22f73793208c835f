package model

import "strings"

// DateLayout is the calendar date format used by task and schedule records.
const DateLayout = "2006-01-02"

// TimePoint is an hour on a calendar date.
type TimePoint struct {
	Hour int    `json:"hrs" yaml:"hrs"`
	Date string `json:"date" yaml:"date"`
}

// Importance is the user-assigned weight of a task.
type Importance string

const (
	ImportanceLow    Importance = "Low"
	ImportanceMedium Importance = "Medium"
	ImportanceHigh   Importance = "High"
)

// Rank maps importance to a minimization key: High=1, Medium=2, Low=3.
// Unrecognised values rank as Medium.
func (i Importance) Rank() int {
	switch i.normalized() {
	case "high":
		return 1
	case "low":
		return 3
	default:
		return 2
	}
}

// Weight is the reward multiplier used when scoring: Low=1, Medium=2, High=3.
func (i Importance) Weight() int {
	return 4 - i.Rank()
}

// Valid reports whether i is one of Low, Medium or High (case-insensitive).
func (i Importance) Valid() bool {
	switch i.normalized() {
	case "low", "medium", "high":
		return true
	}
	return false
}

func (i Importance) normalized() string {
	return strings.ToLower(strings.TrimSpace(string(i)))
}

// Task is a discrete unit of work to be placed on the calendar.
// Tasks are inputs only; the scheduler never mutates them.
type Task struct {
	ID         int        `json:"id" yaml:"id"`
	Name       string     `json:"taskName" yaml:"taskName"`
	Duration   int        `json:"duration" yaml:"duration"` // hours
	Arrival    TimePoint  `json:"arrivalTime" yaml:"arrivalTime"`
	Deadline   TimePoint  `json:"deadlineTime" yaml:"deadlineTime"`
	Importance Importance `json:"importance" yaml:"importance"`
}
