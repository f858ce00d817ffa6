package domain

import (
	"time"
)

// DateWindow is an inclusive range of calendar days.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// TrailingWindow returns the window ending on today and reaching days back.
func TrailingWindow(today time.Time, days int) DateWindow {
	end := Day(today)
	return DateWindow{Start: end.AddDate(0, 0, -days), End: end}
}

func (w DateWindow) StartDate() string {
	return w.Start.Format(DateLayout)
}

func (w DateWindow) EndDate() string {
	return w.End.Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
