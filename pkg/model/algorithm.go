package model

import "strings"

// Algorithm identifies a scheduling discipline.
type Algorithm string

const (
	AlgorithmFCFS     Algorithm = "fcfs"
	AlgorithmSJF      Algorithm = "sjf"
	AlgorithmSRTF     Algorithm = "srtf"
	AlgorithmRR       Algorithm = "rr"
	AlgorithmPriority Algorithm = "ps"
	AlgorithmEDF      Algorithm = "edf"
)

// Algorithms returns every supported algorithm in label order. The position of
// an algorithm in this slice is its class index in generated datasets.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmFCFS,
		AlgorithmSJF,
		AlgorithmSRTF,
		AlgorithmRR,
		AlgorithmPriority,
		AlgorithmEDF,
	}
}

// ParseAlgorithm resolves a case-insensitive, whitespace-trimmed token.
func ParseAlgorithm(token string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(token)))
	for _, known := range Algorithms() {
		if a == known {
			return a, nil
		}
	}
	return "", NewInvalidArgumentError("unknown algorithm %q", token)
}

// Preemptive reports whether the algorithm may interrupt a running task.
func (a Algorithm) Preemptive() bool {
	return a == AlgorithmSRTF || a == AlgorithmRR
}

// NeedsQuantum reports whether the algorithm requires a time quantum.
func (a Algorithm) NeedsQuantum() bool {
	return a == AlgorithmRR
}

// Index returns the position of a in Algorithms, or -1.
func (a Algorithm) Index() int {
	for i, known := range Algorithms() {
		if a == known {
			return i
		}
	}
	return -1
}
