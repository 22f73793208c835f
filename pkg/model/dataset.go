package model

import "time"

// DatasetKind selects which label a generated dataset carries.
type DatasetKind string

const (
	DatasetAlgorithm DatasetKind = "algo"
	DatasetQuantum   DatasetKind = "tq"
)

// LabelColumn is the CSV/DB column name of the label for this kind.
func (k DatasetKind) LabelColumn() string {
	if k == DatasetQuantum {
		return "best_tq"
	}
	return "best_algo"
}

// Valid reports whether k is a known dataset kind.
func (k DatasetKind) Valid() bool {
	return k == DatasetAlgorithm || k == DatasetQuantum
}

// DatasetRun records one offline dataset generation.
type DatasetRun struct {
	ID        string      `json:"id"`
	Kind      DatasetKind `json:"kind"`
	Seed      uint64      `json:"seed"`
	Batches   int         `json:"batches"`
	Quanta    []int       `json:"quanta"`
	CreatedAt time.Time   `json:"created_at"`
}

// Sample is one labeled training example: a feature vector for a random task
// mix and the class index of the best-scoring strategy (or quantum).
type Sample struct {
	Batch    int                `json:"batch"`
	Features map[string]float64 `json:"features"`
	Label    int                `json:"label"`
	Score    float64            `json:"score"`
}
