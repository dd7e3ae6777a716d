package report

import (
	"sort"
	"strings"
	"time"

	"github.com/Afrawles/ticketcharts/internal/week"
)

const (
	ColumnUnresolved = "Unresolved"
	ColumnResolved   = "Resolved"
	UnspecifiedType  = "Unspecified"

	// resolvedStatus is the only status name counted as resolved.
	resolvedStatus = "done"
)

// Table holds per-week counts. Weeks ascend; Counts[i][j] is the count for
// Weeks[i] in Columns[j].
type Table struct {
	Weeks   []time.Time
	Columns []string
	Counts  [][]int
}

func (t Table) Len() int {
	return len(t.Weeks)
}

// Column returns the counts of one column in week order, or nil if absent.
func (t Table) Column(name string) []int {
	idx := -1
	for j, c := range t.Columns {
		if c == name {
			idx = j
			break
		}
	}
	if idx < 0 {
		return nil
	}

	values := make([]int, len(t.Weeks))
	for i := range t.Weeks {
		values[i] = t.Counts[i][idx]
	}
	return values
}

// RowTotal sums every column of row i.
func (t Table) RowTotal(i int) int {
	total := 0
	for _, n := range t.Counts[i] {
		total += n
	}
	return total
}

// Total sums the whole table.
func (t Table) Total() int {
	total := 0
	for i := range t.Weeks {
		total += t.RowTotal(i)
	}
	return total
}

// Labels returns the week starts formatted as YYYY-MM-DD.
func (t Table) Labels() []string {
	labels := make([]string, len(t.Weeks))
	for i, w := range t.Weeks {
		labels[i] = w.Format(week.Layout)
	}
	return labels
}

// IsResolved reports whether status names the done state. Missing statuses
// are unresolved.
func IsResolved(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), resolvedStatus)
}

// ResolvedTable counts issues per week split into Unresolved and Resolved.
func ResolvedTable(issues []Issue, cal week.Calendar, from, to time.Time) Table {
	columns := []string{ColumnUnresolved, ColumnResolved}
	return tabulate(issues, cal, from, to, columns, func(i Issue) string {
		if IsResolved(i.Status) {
			return ColumnResolved
		}
		return ColumnUnresolved
	})
}

// WeeklySeries counts issues per week into a single column. Every week
// between from and to is present, zero or not.
func WeeklySeries(issues []Issue, cal week.Calendar, from, to time.Time, name string) Table {
	return tabulate(issues, cal, from, to, []string{name}, func(Issue) string {
		return name
	})
}

// WorkTypeMix counts issues per week and work type. Columns are sorted by name.
func WorkTypeMix(issues []Issue, cal week.Calendar, from, to time.Time) Table {
	seen := make(map[string]bool)
	var columns []string
	for _, i := range issues {
		wt := workType(i)
		if !seen[wt] {
			seen[wt] = true
			columns = append(columns, wt)
		}
	}
	sort.Strings(columns)

	return tabulate(issues, cal, from, to, columns, workType)
}

func workType(i Issue) string {
	if wt := strings.TrimSpace(i.WorkType); wt != "" {
		return wt
	}
	return UnspecifiedType
}

// tabulate buckets issues by UTC creation week and column. The rows are the
// union of the window's weeks and every week an issue falls in.
func tabulate(issues []Issue, cal week.Calendar, from, to time.Time, columns []string, classify func(Issue) string) Table {
	colIndex := make(map[string]int, len(columns))
	for j, c := range columns {
		colIndex[c] = j
	}

	rows := make(map[time.Time][]int)
	for _, w := range cal.Weeks(utcDate(from), utcDate(to)) {
		rows[w] = make([]int, len(columns))
	}

	for _, issue := range issues {
		w := cal.Truncate(issue.Created.UTC())
		if rows[w] == nil {
			rows[w] = make([]int, len(columns))
		}
		rows[w][colIndex[classify(issue)]]++
	}

	weeks := make([]time.Time, 0, len(rows))
	for w := range rows {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].Before(weeks[j])
	})

	counts := make([][]int, len(weeks))
	for i, w := range weeks {
		counts[i] = rows[w]
	}

	return Table{
		Weeks:   weeks,
		Columns: columns,
		Counts:  counts,
	}
}

func utcDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
