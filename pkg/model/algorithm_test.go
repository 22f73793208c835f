package model

import "testing"

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"fcfs", AlgorithmFCFS, false},
		{" SJF ", AlgorithmSJF, false},
		{"Srtf", AlgorithmSRTF, false},
		{"rr", AlgorithmRR, false},
		{"PS", AlgorithmPriority, false},
		{"edf\n", AlgorithmEDF, false},
		{"priority", "", true},
		{"", "", true},
		{"lottery", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAlgorithm(%q) succeeded, want error", tt.in)
			} else if !IsInvalidArgument(err) {
				t.Errorf("ParseAlgorithm(%q) error = %v, want INVALID_ARGUMENT", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAlgorithm(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAlgorithm_Index(t *testing.T) {
	for i, a := range Algorithms() {
		if a.Index() != i {
			t.Errorf("%s.Index() = %d, want %d", a, a.Index(), i)
		}
	}
	if Algorithm("nope").Index() != -1 {
		t.Error("unknown algorithm index != -1")
	}
	if AlgorithmRR.Index() != 3 {
		t.Errorf("rr index = %d, want 3", AlgorithmRR.Index())
	}
}

func TestAlgorithm_Preemptive(t *testing.T) {
	want := map[Algorithm]bool{
		AlgorithmFCFS: false, AlgorithmSJF: false, AlgorithmSRTF: true,
		AlgorithmRR: true, AlgorithmPriority: false, AlgorithmEDF: false,
	}
	for a, p := range want {
		if a.Preemptive() != p {
			t.Errorf("%s.Preemptive() = %v, want %v", a, a.Preemptive(), p)
		}
	}
	if !AlgorithmRR.NeedsQuantum() || AlgorithmSRTF.NeedsQuantum() {
		t.Error("NeedsQuantum mismatch")
	}
}
