// Package countdown computes the time remaining until the daily mission
// deadline. The deadline is always the next local midnight strictly after
// the reference instant, so the value is never zero: at exactly midnight a
// fresh 24-hour window begins.
package countdown

import (
	"fmt"
	"time"
)

// Value is the remaining time broken into display fields.
type Value struct {
	Hours   int // 0..23
	Minutes int // 0..59
	Seconds int // 0..59
}

// Until returns the countdown to the next local midnight strictly after now.
// Fields are derived by integer division of the millisecond delta. A full
// 24-hour window (now exactly at midnight) is reported as 23:59:59 rather
// than wrapping around to zero.
func Until(now time.Time) Value {
	deadline := Deadline(now)
	ms := deadline.Sub(now).Milliseconds()
	hours := ms / (1000 * 60 * 60)
	if hours >= 24 {
		return Value{Hours: 23, Minutes: 59, Seconds: 59}
	}
	return Value{
		Hours:   int(hours % 24),
		Minutes: int(ms / (1000 * 60) % 60),
		Seconds: int(ms / 1000 % 60),
	}
}

// Deadline returns the start of the calendar day after now, in now's
// location. If now is exactly midnight the deadline is the following
// midnight, never now itself.
func Deadline(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

// String renders the value as a zero-padded HH:MM:SS clock. Formatting is a
// presentation convenience only.
func (v Value) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", v.Hours, v.Minutes, v.Seconds)
}
