package domain

import (
	"strconv"
	"strings"
)

// ParseLooseCount turns loosely formatted audience counts into
// integers: "12k" -> 12000, "1.2k" -> 1200, "25,000" -> 25000.
// Unparsable input is 0, never an error.
func ParseLooseCount(raw string) int {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "+")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		multiplier = 1_000
		s = strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		multiplier = 1_000_000
		s = strings.TrimSuffix(s, "m")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || value < 0 {
		return 0
	}
	return int(value * multiplier)
}

// ParseBucketCeiling reads a bucketed range answer like "0–99" or
// "1k–10k" and returns the largest count it mentions. Plain numbers
// pass through ParseLooseCount.
func ParseBucketCeiling(raw string) int {
	max := 0
	for _, token := range splitRange(raw) {
		if v := ParseLooseCount(token); v > max {
			max = v
		}
	}
	return max
}

func splitRange(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == '–' || r == '-' || r == '—'
	})
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
