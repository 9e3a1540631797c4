package domain

import "testing"

func TestParseLooseCount(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"12k", 12000},
		{"1.2k", 1200},
		{"25,000", 25000},
		{"2m", 2000000},
		{"500+", 500},
		{" 300 ", 300},
		{"0", 0},
		{"", 0},
		{"a lot", 0},
		{"-50", 0},
	}
	for _, tc := range cases {
		if got := ParseLooseCount(tc.raw); got != tc.want {
			t.Errorf("ParseLooseCount(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseBucketCeiling(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"0–99", 99},
		{"100-999", 999},
		{"1k–10k", 10000},
		{"10k+", 10000},
		{"250", 250},
		{"", 0},
		{"unknown", 0},
	}
	for _, tc := range cases {
		if got := ParseBucketCeiling(tc.raw); got != tc.want {
			t.Errorf("ParseBucketCeiling(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestClassifyChoice(t *testing.T) {
	if c := ClassifyChoice("Sell more merch", GoalOptions); !c.Custom {
		t.Errorf("expected custom choice for unlisted answer, got %+v", c)
	}
	if c := ClassifyChoice(GoalOptions[0], GoalOptions); c.Custom {
		t.Errorf("expected listed choice, got custom for %q", GoalOptions[0])
	}
}
