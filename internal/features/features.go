// Package features derives the numeric description of a task mix that the
// external strategy classifier consumes.
package features

import (
	"math"
	"time"

	"github.com/me/taskplan/pkg/model"
)

const epsilon = 1e-5

// Features is the classifier input for one task collection.
type Features struct {
	NumTasks           float64 `json:"num_tasks"`
	StdDuration        float64 `json:"std_duration"`
	TotalWorkload      float64 `json:"total_workload"`
	WorkloadDensity    float64 `json:"workload_density"`
	DensityXTasks      float64 `json:"density_x_tasks"`
	ArrivalSpread      float64 `json:"arrival_spread"`
	DurationRangeRatio float64 `json:"duration_range_ratio"`
	WorkloadXDensity   float64 `json:"workload_x_density"`
	DensityXTightness  float64 `json:"density_x_tightness"`

	// Slack statistics are reported alongside but are not classifier columns.
	AvgSlack float64 `json:"avg_slack"`
	MinSlack float64 `json:"min_slack"`
}

// Names returns the classifier column names in model order.
func Names() []string {
	return []string{
		"num_tasks",
		"std_duration",
		"total_workload",
		"workload_density",
		"density_x_tasks",
		"arrival_spread",
		"duration_range_ratio",
		"workload_x_density",
		"density_x_tightness",
	}
}

// Vector returns the classifier columns in the order of Names.
func (f Features) Vector() []float64 {
	return []float64{
		f.NumTasks,
		f.StdDuration,
		f.TotalWorkload,
		f.WorkloadDensity,
		f.DensityXTasks,
		f.ArrivalSpread,
		f.DurationRangeRatio,
		f.WorkloadXDensity,
		f.DensityXTightness,
	}
}

// Map returns the classifier columns keyed by name.
func (f Features) Map() map[string]float64 {
	out := make(map[string]float64, len(Names()))
	v := f.Vector()
	for i, name := range Names() {
		out[name] = v[i]
	}
	return out
}

// Extract computes the features of tasks.
//
// Arrival is the hour of day only; a deadline is expressed relative to the
// arrival date as days*24 + deadline hour. Standard deviations are population
// deviations.
func Extract(tasks []model.Task) (Features, error) {
	if len(tasks) == 0 {
		return Features{}, model.NewInvalidArgumentError("cannot extract features from an empty task list")
	}

	n := float64(len(tasks))
	durations := make([]float64, len(tasks))
	arrivals := make([]float64, len(tasks))
	gaps := make([]float64, len(tasks))
	slack := make([]float64, len(tasks))

	for i, t := range tasks {
		arrDay, err := parseDate(t.ID, "arrivalTime.date", t.Arrival.Date)
		if err != nil {
			return Features{}, err
		}
		dlDay, err := parseDate(t.ID, "deadlineTime.date", t.Deadline.Date)
		if err != nil {
			return Features{}, err
		}
		days := math.Round(dlDay.Sub(arrDay).Hours() / 24)
		deadline := days*24 + float64(t.Deadline.Hour)

		durations[i] = float64(t.Duration)
		arrivals[i] = float64(t.Arrival.Hour)
		gaps[i] = deadline - arrivals[i]
		slack[i] = gaps[i] - durations[i]
	}

	avgDuration := mean(durations)
	avgGap := mean(gaps)
	total := sum(durations)

	tightness := avgDuration / (avgGap + epsilon)
	density := total / (avgGap + epsilon)
	minDur, maxDur := bounds(durations)
	minArr, maxArr := bounds(arrivals)
	minSlack, _ := bounds(slack)

	return Features{
		NumTasks:           n,
		StdDuration:        stddev(durations),
		TotalWorkload:      total,
		WorkloadDensity:    density,
		DensityXTasks:      density * n,
		ArrivalSpread:      maxArr - minArr,
		DurationRangeRatio: (maxDur - minDur) / (avgDuration + epsilon),
		WorkloadXDensity:   total * density,
		DensityXTightness:  density * tightness,
		AvgSlack:           mean(slack),
		MinSlack:           minSlack,
	}, nil
}

func parseDate(taskID int, field, value string) (time.Time, error) {
	d, err := time.ParseInLocation(model.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, &model.ParseError{TaskID: taskID, Field: field, Value: value, Err: err}
	}
	return d, nil
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func mean(xs []float64) float64 {
	return sum(xs) / float64(len(xs))
}

func stddev(xs []float64) float64 {
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)))
}

func bounds(xs []float64) (lo, hi float64) {
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}
