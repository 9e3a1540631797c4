// Package clock abstracts time so day bucketing and dedup windows are
// testable with a fixed instant.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }
