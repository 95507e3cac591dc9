package entitlement

import "time"

// MonthWindow returns the UTC calendar month containing t as [start, end).
func MonthWindow(t time.Time) (start, end time.Time) {
	u := t.UTC()
	start = time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}
