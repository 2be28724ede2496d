package engine

import "testing"

func TestMedianInts(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   float64
	}{
		{"Empty", nil, 0},
		{"Single", []int{7}, 7},
		{"OddCount", []int{3, 1, 2}, 2},
		{"EvenCount", []int{5, 10}, 7.5},
		{"Unsorted", []int{9, 1, 8, 2}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MedianInts(tt.values); got != tt.want {
				t.Errorf("MedianInts(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestMedianIntsDoesNotMutate(t *testing.T) {
	values := []int{3, 1, 2}
	MedianInts(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input mutated: %v", values)
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v", got)
	}
	if got := Mean([]int{5, 10}); got != 7.5 {
		t.Errorf("Mean = %v, want 7.5", got)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{7.44, 7.4},
		{7.45, 7.5},
		{-1.26, -1.3},
		{3, 3},
	}

	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
