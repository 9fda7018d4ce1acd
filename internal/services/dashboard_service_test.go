package services

import "testing"

func TestBucketAges(t *testing.T) {
	tests := []struct {
		name     string
		ages     []int
		expected AgingBuckets
	}{
		{"empty", nil, AgingBuckets{}},
		{"boundaries", []int{0, 7, 8, 30, 31, 90, 91},
			AgingBuckets{UpToWeek: 2, UpToMonth: 2, UpToQuarter: 2, OverQuarter: 1}},
		{"all fresh", []int{1, 2, 3}, AgingBuckets{UpToWeek: 3}},
		{"all stale", []int{120, 365}, AgingBuckets{OverQuarter: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BucketAges(tt.ages); got != tt.expected {
				t.Errorf("BucketAges(%v) = %+v, want %+v", tt.ages, got, tt.expected)
			}
		})
	}
}
