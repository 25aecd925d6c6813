package streak

import "time"

// calendarDays is the fixed size of the display calendar window.
const calendarDays = 30

// CalendarDay is one display cell of the check-in calendar.
type CalendarDay struct {
	Date      string `json:"date"`  // ISO date
	Day       int    `json:"day"`   // day of month
	Month     string `json:"month"` // short month name, e.g. "Jan"
	CheckedIn bool   `json:"checked_in"`
}

// Calendar builds the most recent 30 calendar days ending at today, oldest
// first. A date absent from history counts as not checked in. Pure function,
// display-only.
func Calendar(history map[string]bool, today time.Time) []CalendarDay {
	day := midnightUTC(today)

	out := make([]CalendarDay, 0, calendarDays)
	for i := 0; i < calendarDays; i++ {
		d := day.AddDate(0, 0, -(calendarDays - 1 - i))
		iso := d.Format(ISODate)
		out = append(out, CalendarDay{
			Date:      iso,
			Day:       d.Day(),
			Month:     d.Format("Jan"),
			CheckedIn: history[iso],
		})
	}
	return out
}
