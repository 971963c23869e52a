package service

import "testing"

func TestCohortHash_KnownValues(t *testing.T) {
	tests := []struct {
		input string
		hash  int32
	}{
		{"", 0},
		{"a", 97},
		{"199001011234", -1072211133},
		{"197707078888", 589346902},
		{"some-user-id", -1073031548},
		{"included-user", -1461263812},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CohortHash(tt.input); got != tt.hash {
				t.Errorf("CohortHash(%q) = %d, want %d", tt.input, got, tt.hash)
			}
		})
	}
}

func TestCohortBucket(t *testing.T) {
	tests := []struct {
		input  string
		bucket int
		in     bool
	}{
		{"included-user", 12, true},
		{"some-user-id", 48, false},
		{"199001011234", 33, false},
		{"190101010023", 96, false},
		{"198505055678", 3, true},
		{"197707078888", 2, true},
		{"198001019999", 82, false},
		{"198512309999", 43, false},
		{"200002024321", 80, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CohortBucket(tt.input); got != tt.bucket {
				t.Errorf("CohortBucket(%q) = %d, want %d", tt.input, got, tt.bucket)
			}
			if got := InCohort(tt.input); got != tt.in {
				t.Errorf("InCohort(%q) = %v, want %v", tt.input, got, tt.in)
			}
		})
	}
}

func TestIsEligible(t *testing.T) {
	tests := []struct {
		name           string
		personalNumber string
		flag           bool
		want           bool
	}{
		{"allow-listed with flag on", "190101010023", true, true},
		{"allow-listed with flag off", "190101010023", false, false},
		{"second allow-listed with flag on", "199001011234", true, true},
		{"cohort member with flag off", "198505055678", false, true},
		{"cohort member with flag on", "198505055678", true, true},
		{"neither with flag on", "198001019999", true, false},
		{"neither with flag off", "198512309999", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEligible(tt.personalNumber, tt.flag); got != tt.want {
				t.Errorf("IsEligible(%q, %v) = %v, want %v", tt.personalNumber, tt.flag, got, tt.want)
			}
		})
	}
}

func TestDiscountedTotal(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 0},
		{10, 9},
		{30, 27},
		{80, 72},
		{5, 5},   // 4.5 rounds up
		{15, 14}, // 13.5 rounds up
		{14, 13}, // 12.6
		{11, 10}, // 9.9
		{12, 11}, // 10.8
		{16, 14}, // 14.4
	}

	for _, tt := range tests {
		if got := DiscountedTotal(tt.total); got != tt.want {
			t.Errorf("DiscountedTotal(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
