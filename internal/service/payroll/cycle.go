package payroll

import "time"

// cycleWindowDays returns the day count of the pay-cycle window labeled
// by month (YYYY-MM). With a start day of 1 the window is the calendar
// month; otherwise it runs from startDay of the previous month up to
// the day before startDay of the labeled month. Zero on an unparseable
// month so the caller can fall back to the attendance aggregate.
func cycleWindowDays(month string, startDay int) int {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0
	}
	if startDay < 1 {
		startDay = 1
	}

	var start, end time.Time
	if startDay == 1 {
		start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	} else {
		end = time.Date(t.Year(), t.Month(), startDay, 0, 0, 0, 0, time.UTC)
		start = end.AddDate(0, -1, 0)
	}
	return int(end.Sub(start).Hours() / 24)
}
