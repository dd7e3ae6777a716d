package week_test

import (
	"testing"
	"time"

	"github.com/Afrawles/ticketcharts/internal/week"
	"github.com/m-mizutani/gt"
)

func date(s string) time.Time {
	t, err := time.Parse(week.Layout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMondayWeeksAgo(t *testing.T) {
	testCases := []struct {
		name string
		now  string
		n    int
		want string
	}{
		{"wednesday this week", "2024-01-03", 0, "2024-01-01"},
		{"monday this week", "2024-01-01", 0, "2024-01-01"},
		{"sunday belongs to previous monday", "2024-01-07", 0, "2024-01-01"},
		{"one week back", "2024-01-03", 1, "2023-12-25"},
		{"eight weeks back", "2024-03-06", 8, "2024-01-08"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := week.MondayWeeksAgo(date(tc.now), tc.n)
			gt.Equal(t, got.Format(week.Layout), tc.want)
			gt.Equal(t, got.Weekday(), time.Monday)
		})
	}
}

func TestSundayWeeksAgo(t *testing.T) {
	got := week.SundayWeeksAgo(date("2024-01-03"), 0)
	gt.Equal(t, got.Format(week.Layout), "2024-01-07")
	gt.Equal(t, got.Weekday(), time.Sunday)
}

func TestBoundariesStaySixDaysApart(t *testing.T) {
	start := date("2024-02-01")
	for d := 0; d < 14; d++ {
		now := start.AddDate(0, 0, d)
		for n := 0; n < 20; n++ {
			mon := week.MondayWeeksAgo(now, n)
			sun := week.SundayWeeksAgo(now, n)
			gt.Equal(t, sun.Sub(mon), 6*24*time.Hour)

			gt.Equal(t, mon.Sub(week.MondayWeeksAgo(now, n+1)), 7*24*time.Hour)
			gt.Equal(t, sun.Sub(week.SundayWeeksAgo(now, n+1)), 7*24*time.Hour)
		}
	}
}

func TestCalendarTruncate(t *testing.T) {
	instant := time.Date(2024, 1, 2, 17, 30, 0, 0, time.UTC)

	gt.Equal(t, week.MondayStart.Truncate(instant), date("2024-01-01"))
	gt.Equal(t, week.SundayStart.Truncate(instant), date("2023-12-31"))

	saturday := time.Date(2024, 1, 6, 23, 59, 0, 0, time.UTC)
	gt.Equal(t, week.SundayStart.Truncate(saturday), date("2023-12-31"))
}

func TestCalendarWeeks(t *testing.T) {
	weeks := week.MondayStart.Weeks(date("2024-01-01"), date("2024-01-17"))
	gt.A(t, weeks).Length(3)
	gt.Equal(t, weeks[0], date("2024-01-01"))
	gt.Equal(t, weeks[1], date("2024-01-08"))
	gt.Equal(t, weeks[2], date("2024-01-15"))

	t.Run("to before from yields nothing", func(t *testing.T) {
		gt.A(t, week.MondayStart.Weeks(date("2024-02-01"), date("2024-01-01"))).Length(0)
	})
}

func TestWindowOfNineWeeks(t *testing.T) {
	now := date("2024-03-06")
	start := week.SundayStart.WeeksAgo(now, 8)
	gt.Equal(t, start.Weekday(), time.Sunday)
	gt.A(t, week.SundayStart.Weeks(start, now)).Length(9)
}
