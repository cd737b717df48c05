package domain

import "time"

// DefaultForecastDays is the horizon used when none is requested.
const DefaultForecastDays = 7

// ForecastDay is one day's bucket of scheduled work.
type ForecastDay struct {
	// Date is the bucket's day, truncated to midnight local time.
	Date time.Time

	// Calendar holds calendar items starting on this day.
	Calendar []CalendarItem

	// DueActions holds actions due on this day.
	DueActions []Action
}

// Forecast is a dated view over upcoming commitments.
type Forecast struct {
	// Overdue holds incomplete actions whose due date has passed.
	Overdue []Action

	// Days holds one bucket per day over the horizon, in date order.
	Days []ForecastDay
}

// IsEmpty reports whether the forecast holds no items at all.
func (f *Forecast) IsEmpty() bool {
	if len(f.Overdue) > 0 {
		return false
	}
	for i := range f.Days {
		if len(f.Days[i].Calendar) > 0 || len(f.Days[i].DueActions) > 0 {
			return false
		}
	}
	return true
}
