// Package calendar derives per-day availability for the mission scheduler.
// Cells are recomputed from "today" and the current schedule on every
// evaluation; nothing here is cached or stored.
package calendar

import "time"

// ISODate is the wire format for calendar dates: YYYY-MM-DD, no time
// component. Comparisons are by calendar day only.
const ISODate = "2006-01-02"

// ScheduleLookup reports whether a date already hosts a mission.
type ScheduleLookup interface {
	Scheduled(date string) bool
}

// Cell describes a single day of the month grid.
type Cell struct {
	Day        int    // day of month, 1-based
	Date       string // ISO date string for this cell
	Past       bool
	Scheduled  bool
	Selectable bool // !Past && !Scheduled
}

// Grid is one month of cells plus the blank slots that align the first day
// to its weekday column (Sunday = 0).
type Grid struct {
	LeadingBlanks int
	Cells         []Cell
}

// MonthGrid computes the grid for the month containing anchor. A day is
// past when it falls strictly before today by date-only comparison; a day
// that is both past and scheduled is still just "not selectable", the two
// conditions do not combine into a distinct state.
func MonthGrid(anchor, today time.Time, scheduled ScheduleLookup) Grid {
	first := startOfMonth(anchor)
	today = Truncate(today)
	days := daysInMonth(first)

	grid := Grid{
		LeadingBlanks: int(first.Weekday()),
		Cells:         make([]Cell, 0, days),
	}
	for day := 1; day <= days; day++ {
		date := first.AddDate(0, 0, day-1)
		cell := Cell{
			Day:  day,
			Date: date.Format(ISODate),
			Past: date.Before(today),
		}
		if scheduled != nil {
			cell.Scheduled = scheduled.Scheduled(cell.Date)
		}
		cell.Selectable = !cell.Past && !cell.Scheduled
		grid.Cells = append(grid.Cells, cell)
	}
	return grid
}

// PrevMonth shifts the anchor back one calendar month, clamped to the 1st
// so month-length overflow can never skip a month.
func PrevMonth(anchor time.Time) time.Time {
	return startOfMonth(anchor).AddDate(0, -1, 0)
}

// NextMonth shifts the anchor forward one calendar month, clamped to the 1st.
func NextMonth(anchor time.Time) time.Time {
	return startOfMonth(anchor).AddDate(0, 1, 0)
}

// Truncate drops the time-of-day component, keeping the calendar date.
func Truncate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

func daysInMonth(first time.Time) int {
	return first.AddDate(0, 1, -1).Day()
}
