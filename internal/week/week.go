package week

import "time"

const Layout = "2006-01-02"

// Calendar buckets instants into weeks that begin on Start.
type Calendar struct {
	Start time.Weekday
}

var (
	// MondayStart weeks run Monday through Sunday.
	MondayStart = Calendar{Start: time.Monday}
	// SundayStart weeks run Sunday through Saturday (periods ending Saturday).
	SundayStart = Calendar{Start: time.Sunday}
)

// Truncate returns midnight of the first day of the week containing t, in t's location.
func (c Calendar) Truncate(t time.Time) time.Time {
	day := midnight(t)
	back := (int(day.Weekday()) - int(c.Start) + 7) % 7
	return day.AddDate(0, 0, -back)
}

// WeeksAgo returns the start of the week n weeks before the week containing now.
func (c Calendar) WeeksAgo(now time.Time, n int) time.Time {
	return c.Truncate(now).AddDate(0, 0, -7*n)
}

// Weeks lists every week start from the week of from through the week of to.
func (c Calendar) Weeks(from, to time.Time) []time.Time {
	first := c.Truncate(from)
	last := c.Truncate(to)

	var weeks []time.Time
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		weeks = append(weeks, w)
	}
	return weeks
}

// MondayWeeksAgo returns the Monday of the week n weeks ago (0 = this week).
func MondayWeeksAgo(now time.Time, n int) time.Time {
	return MondayStart.WeeksAgo(now, n)
}

// SundayWeeksAgo returns the Sunday closing the Monday-Sunday week n weeks ago.
func SundayWeeksAgo(now time.Time, n int) time.Time {
	return MondayWeeksAgo(now, n).AddDate(0, 0, 6)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
